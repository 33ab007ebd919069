package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/bcs230015/Meeting-Mangagement-chatbot/config"
	"github.com/bcs230015/Meeting-Mangagement-chatbot/services/backend"
	ai "github.com/bcs230015/Meeting-Mangagement-chatbot/services/intelligence"
	"github.com/bcs230015/Meeting-Mangagement-chatbot/utils"

	"github.com/fatih/color"
)

// Terminal chat harness: logs in, opens a model session and loops over
// stdin until "exit".
func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	if config.AppConfig.GeminiAPIKey == "" {
		log.Fatal("GEMINI_API_KEY is not set")
	}

	ctx := context.Background()

	backendClient := backend.NewClient(config.AppConfig.BackendURL, logger)
	token, err := backendClient.Login(ctx, config.AppConfig.BackendUsername, config.AppConfig.BackendPassword)
	if err != nil {
		log.Fatalf("Backend login failed: %v", err)
	}

	geminiClient := ai.NewGeminiClient(config.AppConfig.GeminiAPIKey, config.AppConfig.GeminiModel)
	orchestrator := ai.NewOrchestrator(backendClient, logger)
	conversation := ai.NewConversation(geminiClient.NewSession, orchestrator, token, logger)

	boldGreen := color.New(color.FgGreen, color.Bold).SprintFunc()
	userPrompt := color.New(color.FgCyan, color.Bold).SprintFunc()
	botPrompt := color.New(color.FgYellow, color.Bold).SprintFunc()

	fmt.Println(boldGreen("--- Meeting room chatbot ready (logged in!) ---"))
	fmt.Println("Type your message and press Enter. Type 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(userPrompt("You: "))
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.ToLower(line) == "exit" {
			break
		}

		reply, err := conversation.PostTurn(ctx, line)
		if err != nil {
			fmt.Printf("%s %v\n\n", botPrompt("Bot:"), err)
			continue
		}
		fmt.Printf("%s %s\n\n", botPrompt("Bot:"), reply)
	}
}
