package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mrozdorothy3-debug/swed/domain"
	"github.com/mrozdorothy3-debug/swed/internal/app"
	"github.com/mrozdorothy3-debug/swed/internal/config"
)

// logSink prints session lifecycle events to stderr
type logSink struct{}

func (logSink) Publish(e *domain.SessionEvent) {
	if e == nil {
		return
	}
	if e.ErrorMsg != "" {
		log.Printf("event %s user=%q err=%q", e.EventType, e.Username, e.ErrorMsg)
		return
	}
	log.Printf("event %s user=%q", e.EventType, e.Username)
}

func main() {
	username := flag.String("user", "neil", "username to log in as")
	password := flag.String("password", "", "password for the user")
	pin := flag.String("pin", "0034", "confirmation PIN")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	c := app.NewContainer(cfg, logSink{})
	ctx := context.Background()

	if !c.Sessions.Login(ctx, *username, *password) {
		fmt.Println("login failed")
		os.Exit(1)
	}
	sess := c.Sessions.Current()
	fmt.Printf("logged in as %s (%s)\n", sess.Username, sess.Role)

	c.Transfers.LoadFee(ctx, sess.Username, sess.Token)

	c.Transfers.SelectCountry(domain.CountryUS)
	c.Transfers.SetField(domain.FieldBankName, "First National Bank")
	c.Transfers.SetField(domain.FieldRoutingNumber, "021000021")
	c.Transfers.SetField(domain.FieldAccountNumber, "12345678")
	c.Transfers.SetField(domain.FieldRecipientName, "Jane Doe")
	c.Transfers.SetField(domain.FieldAmount, "100.00")

	if !c.Transfers.Submit() {
		fmt.Println("validation failed:")
		for field, msg := range c.Transfers.ValidationErrors() {
			fmt.Printf("  %s: %s\n", field, msg)
		}
		os.Exit(1)
	}

	c.Transfers.SetPin(*pin)
	if !c.Transfers.ConfirmPin(ctx) {
		fmt.Printf("pin rejected: %s\n", c.Transfers.PinError())
		os.Exit(1)
	}

	fmt.Println(c.Transfers.RejectionNotice())
	c.Transfers.DismissRejection()

	c.Sessions.Logout()
	fmt.Println("logged out")
}
