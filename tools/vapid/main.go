// Command vapid prints a fresh VAPID key pair for WizSpeek web push.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/SherClockHolmes/webpush-go"
)

func main() {
	email := flag.String("email", "admin@wizspeek.app", "contact address sent to push services")
	flag.Parse()

	privateKey, publicKey, err := webpush.GenerateVAPIDKeys()
	if err != nil {
		log.Fatal("Failed to generate VAPID keys: ", err)
	}

	fmt.Println("========================================")
	fmt.Println("VAPID PUBLIC KEY:")
	fmt.Println(publicKey)
	fmt.Println()
	fmt.Println("VAPID PRIVATE KEY:")
	fmt.Println(privateKey)
	fmt.Println("========================================")
	fmt.Println("Add these to your .env file:")
	fmt.Printf("VAPID_PUBLIC_KEY=%s\n", publicKey)
	fmt.Printf("VAPID_PRIVATE_KEY=%s\n", privateKey)
	fmt.Printf("VAPID_EMAIL=mailto:%s\n", *email)
}
