package main

import (
	"context"
	"log"

	"brainhints/backend/internal/config"
	"brainhints/backend/internal/domain/content"
	"brainhints/backend/internal/domain/video"
	"brainhints/backend/internal/firebase"
	"brainhints/backend/internal/textutil"
)

var samples = []video.VideoInput{
	{
		Title:        "Getting Started with BrainHints",
		Description:  "A short tour of the help center: browsing categories, searching and leaving feedback.",
		VideoURL:     "https://res.cloudinary.com/demo/video/upload/dog.mp4",
		ThumbnailURL: "https://res.cloudinary.com/demo/video/upload/dog.jpg",
		Category:     "Getting Started",
		Duration:     "2:15",
		Tags:         []string{"intro", "tour"},
	},
	{
		Title:       "Resetting Your Password",
		Description: "Walks through the password reset email and what to do when it does not arrive.",
		VideoURL:    "https://res.cloudinary.com/demo/video/upload/elephants.mp4",
		Category:    "Account",
		Duration:    "1:40",
		Tags:        []string{"password", "login"},
	},
	{
		Title:       "Opening a Support Ticket",
		Description: "How to describe a problem so the support team can help quickly, and how to follow replies.",
		VideoURL:    "https://res.cloudinary.com/demo/video/upload/sea_turtle.mp4",
		Category:    "Support",
		Duration:    "3:05",
		Tags:        []string{"support", "tickets"},
	},
}

func main() {
	ctx := context.Background()
	cfg := config.Load()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase init failed: %v", err)
	}
	defer clients.Close()

	svc := video.NewService(video.NewRepo(clients.Firestore), nil)

	var created, skipped int
	for _, in := range samples {
		id := textutil.Slugify(in.Title)
		if _, err := svc.Get(ctx, id); err == nil {
			skipped++
			continue
		} else if !video.IsErrNotFound(err) {
			log.Fatalf("lookup %s: %v", id, err)
		}

		in.Status = content.StatusPublished
		if _, err := svc.CreateWithID(ctx, id, "seed", in); err != nil {
			log.Fatalf("create %s: %v", id, err)
		}
		created++
		log.Printf("[Seed] created video %s", id)
	}
	log.Printf("[Seed] done: %d created, %d already present", created, skipped)
}
