package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/ayush1817-lab/UCP/internal/agent"
	"github.com/ayush1817-lab/UCP/internal/assistant"
	"github.com/ayush1817-lab/UCP/internal/catalog"
	"github.com/ayush1817-lab/UCP/internal/domain"
	"github.com/ayush1817-lab/UCP/pkg/config"
	"github.com/ayush1817-lab/UCP/pkg/logger"
)

func main() {
	cfg := config.Load()
	logg := logger.New(logger.Options{
		Service: "shop-agent",
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	store, err := openCatalog(cfg)
	if err != nil {
		log.Fatalf("Failed to open catalog: %v", err)
	}
	defer store.Close()

	classifier := assistant.NewGeminiClassifier(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.ClassifierTimeout)

	session := agent.NewSession(agent.Config{
		Profile:    demoProfile(),
		Catalog:    store,
		Classifier: classifier,
		MerchantID: cfg.MerchantID,
		Currency:   cfg.Currency,
		Logger:     logg,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Println("UCP + AP2 shopping agent")
	fmt.Println("Type a message, or /products /cart /clear /checkout /intent /mandates /orders /quit")

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			break
		}
		if err := dispatch(ctx, session, scanner, line); err != nil {
			fmt.Printf("error: %v\n", err)
		}
		if ctx.Err() != nil {
			break
		}
	}

	fmt.Println("bye")
}

func openCatalog(cfg config.Config) (catalog.Store, error) {
	if cfg.CatalogDSN != "" {
		store, err := catalog.NewSQLiteStore(cfg.CatalogDSN)
		if err != nil {
			return nil, err
		}
		if err := store.RunMigrations(cfg.MigrationsPath); err != nil {
			store.Close()
			return nil, err
		}
		return store, nil
	}
	return catalog.NewFileStore(cfg.CatalogPath), nil
}

func dispatch(ctx context.Context, s *agent.Session, scanner *bufio.Scanner, line string) error {
	switch {
	case line == "/products":
		products, err := s.Products(ctx)
		if err != nil {
			return err
		}
		for _, p := range products {
			fmt.Printf("  %s  %-22s %-10s $%.2f\n", p.ID, p.Name, p.Category, p.Price)
		}
		return nil

	case line == "/cart":
		view, err := s.ViewCart(ctx)
		if err != nil {
			return err
		}
		for _, p := range view.Items {
			fmt.Printf("  %-22s $%.2f\n", p.Name, p.Price)
		}
		fmt.Printf("  total: $%.2f (%d items)\n", view.Total, view.Count)
		return nil

	case line == "/clear":
		s.ClearCart()
		fmt.Println("  cart cleared")
		return nil

	case line == "/checkout":
		return runCheckout(ctx, s, scanner)

	case strings.HasPrefix(line, "/intent"):
		return createIntent(s, line)

	case line == "/mandates":
		for _, m := range s.IntentMandates() {
			fmt.Printf("  %s  %s  category=%q max_amount=%.2f valid_until=%s\n",
				m.ID, m.Status, m.Conditions.Category, m.MaxAmount, m.ValidUntil.Format("2006-01-02"))
		}
		return nil

	case strings.HasPrefix(line, "/revoke "):
		return s.RevokeIntentMandate(strings.TrimSpace(strings.TrimPrefix(line, "/revoke ")))

	case line == "/orders":
		for _, o := range s.Orders() {
			fmt.Printf("  %s  %s  $%.2f  auth=%s  delivery=%s\n",
				o.ID, o.Status, o.Total, o.Payment.AuthorizationCode,
				o.EstimatedDelivery.Format("January 2, 2006"))
		}
		return nil

	default:
		return runChat(ctx, s, line)
	}
}

func runChat(ctx context.Context, s *agent.Session, message string) error {
	result, err := s.Chat(ctx, message)
	if err != nil {
		return err
	}

	fmt.Println(result.Message)

	if result.AddedProduct != nil {
		fmt.Printf("  [cart] added %s, %d item(s) in cart\n", result.AddedProduct.Name, result.CartCount)
	}
	if result.AutoBuyTriggered && result.Mandate != nil {
		fmt.Printf("  [ap2] auto-buy eligible under %s (signal only, nothing purchased)\n", result.Mandate.ID)
	}
	if result.Cart != nil {
		fmt.Printf("  [cart] %d item(s), total $%.2f\n", result.Cart.Count, result.Cart.Total)
	}
	if result.Intent == assistant.IntentCheckout {
		fmt.Println("  [ap2] run /checkout to create and approve a cart mandate")
	}
	return nil
}

func runCheckout(ctx context.Context, s *agent.Session, scanner *bufio.Scanner) error {
	m, err := s.CreateCartMandate(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("cart mandate %s (%s)\n", m.ID, m.Status)
	for _, item := range m.Items {
		fmt.Printf("  %-22s $%.2f\n", item.Name, item.Price)
	}
	fmt.Printf("  total: $%.2f %s\n", m.TotalAmount, m.Currency)
	fmt.Printf("  paying with %s ending %s, shipping to %s\n",
		m.PaymentMethod.Brand, m.PaymentMethod.LastFour, m.ShippingAddress.City)

	fmt.Print("approve? [y/N] ")
	if !scanner.Scan() || strings.ToLower(strings.TrimSpace(scanner.Text())) != "y" {
		fmt.Println("  checkout abandoned, mandate discarded")
		return nil
	}

	result, err := s.ApproveCheckout(ctx, m)
	if err != nil {
		return err
	}

	fmt.Printf("order %s confirmed, total $%.2f, auth code %s\n",
		result.Order.ID, result.Order.Total, result.PaymentMandate.AuthorizationCode)
	fmt.Printf("  ap2 trail: cart mandate %s sig %s / payment mandate %s\n",
		result.Order.AP2Verification.CartMandateID,
		result.Order.AP2Verification.CartMandateSignature,
		result.Order.AP2Verification.PaymentMandateID)
	return nil
}

// createIntent parses "/intent [category] [max_price]".
func createIntent(s *agent.Session, line string) error {
	fields := strings.Fields(line)

	var conditions domain.IntentConditions
	if len(fields) > 1 {
		conditions.Category = fields[1]
	}
	if len(fields) > 2 {
		maxPrice, err := strconv.ParseFloat(fields[2], 64)
		if err != nil {
			return fmt.Errorf("invalid max price %q: %w", fields[2], err)
		}
		conditions.MaxPrice = &maxPrice
	}

	m, err := s.CreateIntentMandate(conditions)
	if err != nil {
		return err
	}
	fmt.Printf("  intent mandate %s active until %s\n", m.ID, m.ValidUntil.Format("2006-01-02"))
	return nil
}

func demoProfile() domain.UserProfile {
	return domain.UserProfile{
		UserID: "user_12345",
		Name:   "Ayush",
		Email:  "ayush@example.com",
		PaymentMethods: []domain.PaymentMethod{
			{ID: "pm_1", Type: "credit_card", Brand: "Visa", LastFour: "4242", IsDefault: true},
			{ID: "pm_2", Type: "paypal", Email: "ayush@paypal.com"},
		},
		ShippingAddress: domain.ShippingAddress{
			Street:  "123 Main Street",
			City:    "Mumbai",
			State:   "Maharashtra",
			Zip:     "400001",
			Country: "India",
		},
	}
}
