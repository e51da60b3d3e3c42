// Command summarizer walks the chats held by a memory server, condenses each
// transcript with the configured model and writes the result back as the
// chat's summary.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/mnemolabs/mnemo/internal/config"
	"github.com/mnemolabs/mnemo/internal/service/summary"
	"github.com/mnemolabs/mnemo/pkg/memory"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: failed to load .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	chatID := flag.String("chat", "", "summarize a single chat instead of all of them")
	timeout := flag.Duration("timeout", 2*time.Minute, "overall run deadline")
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	summarySvc, err := summary.NewService(ctx, cfg.AI)
	if err != nil {
		log.Fatalf("failed to initialize summary service: %v", err)
	}

	client := memory.New(memory.Config{
		BaseURL: cfg.Client.BaseURL,
		Timeout: cfg.Client.Timeout,
	})

	chats, err := resolveChats(ctx, client, *chatID)
	if err != nil {
		log.Fatalf("failed to resolve chats: %v", err)
	}

	summarized := 0
	for _, chat := range chats {
		if err := summarizeChat(ctx, client, summarySvc, chat); err != nil {
			log.Printf("chat %s: %v", chat.ID, err)
			continue
		}
		summarized++
	}

	log.Printf("done: %d of %d chats summarized", summarized, len(chats))
}

func resolveChats(ctx context.Context, client *memory.Client, chatID string) ([]*memory.Chat, error) {
	if chatID != "" {
		chat, err := client.GetChat(ctx, chatID)
		if err != nil {
			return nil, err
		}
		return []*memory.Chat{chat}, nil
	}
	return client.ListChats(ctx)
}

func summarizeChat(ctx context.Context, client *memory.Client, summarySvc *summary.Service, chat *memory.Chat) error {
	messages, err := client.GetMessages(ctx, chat.ID)
	if err != nil {
		return err
	}
	if len(messages) == 0 {
		log.Printf("chat %s: no messages, skipping", chat.ID)
		return nil
	}

	text, err := summarySvc.Summarize(ctx, messages)
	if err != nil {
		return err
	}

	if err := client.SetSummary(ctx, chat.ID, text); err != nil {
		return err
	}

	log.Printf("chat %s: summary updated (%d messages)", chat.ID, len(messages))
	return nil
}
