package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"chatproxy/client"
	"chatproxy/config"
)

var reader = bufio.NewReader(os.Stdin)

func main() {
	cfg, err := config.LoadClient(config.DefaultEnvFile)
	if err != nil {
		fmt.Printf("Configuration error: %v\n", err)
		os.Exit(1)
	}

	api := client.New(cfg.APIURL, cfg.Timeout)
	session := client.NewSession()
	ctx := context.Background()

	fmt.Println("AI Chat Assistant")
	if msg, err := api.Welcome(ctx); err != nil {
		fmt.Printf("Warning: API at %s is not reachable (%v)\n", cfg.APIURL, err)
	} else {
		fmt.Printf("Connected to %s: %s\n", cfg.APIURL, msg)
	}
	printHelp()

	for {
		fmt.Printf("\n[%s] You: ", session.ID)
		input, err := reader.ReadString('\n')
		if err != nil {
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)

		switch input {
		case "":
			continue
		case "/exit", "/quit":
			fmt.Println("Goodbye!")
			return
		case "/help":
			printHelp()
		case "/new":
			session.Reset()
			fmt.Printf("Started new conversation %s\n", session.ID)
		case "/clear":
			if err := api.DeleteConversation(ctx, session.ID); err != nil && !errors.Is(err, client.ErrNotFound) {
				fmt.Printf("Failed to clear conversation: %v\n", err)
				continue
			}
			session.Reset()
			fmt.Printf("Conversation cleared. New conversation %s\n", session.ID)
		case "/history":
			showHistory(ctx, api, session)
		default:
			ask(ctx, api, session, input)
		}
	}
}

func printHelp() {
	fmt.Println("Type a message to chat. Commands:")
	fmt.Println("  /new      start a new conversation")
	fmt.Println("  /clear    delete this conversation on the server and start over")
	fmt.Println("  /history  show the server's history for this conversation")
	fmt.Println("  /exit     quit")
}

func ask(ctx context.Context, api *client.Client, session *client.Session, question string) {
	fmt.Println("Thinking...")
	resp, err := api.Ask(ctx, session.ID, question)
	if err != nil {
		var apiErr *client.APIError
		switch {
		case errors.Is(err, client.ErrConnection):
			fmt.Println("Failed to connect to the API. Please try again later.")
		case errors.Is(err, client.ErrTimeout):
			fmt.Println("Request timed out. The server took too long to respond.")
		case errors.As(err, &apiErr):
			fmt.Printf("Error: %d - %s\n", apiErr.StatusCode, apiErr.Message)
		default:
			fmt.Printf("An error occurred: %v\n", err)
		}
		return
	}

	session.Record(question, resp)
	fmt.Printf("Assistant: %s\n", resp.Answer)
}

func showHistory(ctx context.Context, api *client.Client, session *client.Session) {
	conv, err := api.Conversation(ctx, session.ID)
	if errors.Is(err, client.ErrNotFound) {
		fmt.Println("No messages yet.")
		return
	}
	if err != nil {
		fmt.Printf("Failed to retrieve history: %v\n", err)
		return
	}

	session.Messages = conv.Messages
	for _, msg := range conv.Messages {
		fmt.Printf("%s: %s\n", msg.Role, msg.Content)
	}
}
