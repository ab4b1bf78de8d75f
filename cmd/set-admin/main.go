package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	firebase "firebase.google.com/go/v4"

	"brainhints/backend/internal/domain/user"
)

func main() {
	uid := flag.String("uid", "", "target firebase uid")
	email := flag.String("email", "", "target account email (used when -uid is empty)")
	revoke := flag.Bool("revoke", false, "remove admin instead of granting it")
	flag.Parse()

	ctx := context.Background()
	app, err := firebase.NewApp(ctx, nil)
	if err != nil {
		log.Fatalf("firebase.NewApp: %v", err)
	}
	authClient, err := app.Auth(ctx)
	if err != nil {
		log.Fatalf("app.Auth: %v", err)
	}
	fs, err := app.Firestore(ctx)
	if err != nil {
		log.Fatalf("app.Firestore: %v", err)
	}
	defer fs.Close()

	target, err := user.ResolveUID(ctx, authClient, *uid, *email)
	if err != nil {
		log.Fatalf("usage: set-admin -uid=xxxxx | -email=a@b.c [-revoke]: %v", err)
	}

	if err := user.SetAdmin(ctx, authClient, user.NewRepo(fs), target, !*revoke); err != nil {
		log.Fatalf("SetAdmin: %v", err)
	}

	if *revoke {
		fmt.Println("ok: admin revoked for", target)
		return
	}
	fmt.Println("ok: admin granted to", target)
}
