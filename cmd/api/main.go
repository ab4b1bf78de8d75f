package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"brainhints/backend/internal/autosave"
	"brainhints/backend/internal/cache"
	"brainhints/backend/internal/config"
	"brainhints/backend/internal/domain/article"
	"brainhints/backend/internal/domain/comment"
	"brainhints/backend/internal/domain/faq"
	"brainhints/backend/internal/domain/feedback"
	"brainhints/backend/internal/domain/notifications"
	"brainhints/backend/internal/domain/search"
	"brainhints/backend/internal/domain/support"
	"brainhints/backend/internal/domain/user"
	"brainhints/backend/internal/domain/video"
	"brainhints/backend/internal/firebase"
	"brainhints/backend/internal/handlers"
	apihttp "brainhints/backend/internal/http"
	"brainhints/backend/internal/media"
	"brainhints/backend/internal/scheduler"
)

func main() {
	ctx := context.Background()
	cfg := config.Load()

	clients, err := firebase.NewClients(ctx, cfg)
	if err != nil {
		log.Fatalf("firebase init failed: %v", err)
	}
	defer clients.Close()

	// Redis is optional; a nil cache always misses
	var rc *cache.Cache
	if cfg.RedisURL != "" {
		rc, err = cache.New(ctx, cfg.RedisURL)
		if err != nil {
			log.Printf("[Cache] disabled: %v", err)
			rc = nil
		} else {
			defer rc.Close()
			log.Println("[Cache] redis connected")
		}
	}

	fs := clients.Firestore

	// Services
	notificationsSvc := notifications.NewService(notifications.NewRepo(fs))
	if clients.Messaging != nil {
		notificationsSvc.SetPusher(notifications.NewFCMPusher(fs, clients.Messaging))
	}

	articleSvc := article.NewService(article.NewRepo(fs), rc)
	videoSvc := video.NewService(video.NewRepo(fs), rc)
	faqSvc := faq.NewService(faq.NewRepo(fs), rc)
	searchSvc := search.NewService(search.Sources{
		Articles: articleSvc,
		Videos:   videoSvc,
		FAQs:     faqSvc,
	}, rc, cfg.SearchCacheTTL)

	commentSvc := comment.NewService(comment.NewRepo(fs), notificationsSvc)
	feedbackSvc := feedback.NewService(feedback.NewRepo(fs))
	supportSvc := support.NewService(support.NewRepo(fs), notificationsSvc)
	userSvc := user.NewService(user.NewRepo(fs))

	drafts := autosave.NewManager(cfg.AutosaveDelay)
	apihttp.RegisterDraftSavers(drafts, articleSvc, videoSvc)

	// Media: Cloudinary for direct uploads, GCS signed URLs for large browser uploads
	var uploader media.Uploader
	if cld, err := media.NewCloudinary(cfg); err == nil {
		uploader = cld
		log.Println("[Media] cloudinary enabled")
	} else {
		log.Printf("[Media] cloudinary disabled: %v", err)
	}
	signer := media.NewSigner(ctx, cfg.StorageBucket, cfg.SignedURLServiceAccountEmail, clients.Storage)
	if signer == nil {
		log.Println("[Media] signed upload URLs disabled")
	}
	mediaHandler := handlers.NewMedia(media.NewService(uploader), signer)

	bgCtx, stopBackground := context.WithCancel(ctx)
	defer stopBackground()
	go scheduler.New(cfg.PublishInterval,
		scheduler.Job{Name: "articles", Publisher: articleSvc},
		scheduler.Job{Name: "videos", Publisher: videoSvc},
	).Run(bgCtx)

	router := apihttp.NewRouter(apihttp.RouterDeps{
		Cfg:              cfg,
		Verifier:         clients.Auth,
		ArticleSvc:       articleSvc,
		VideoSvc:         videoSvc,
		FAQSvc:           faqSvc,
		SearchSvc:        searchSvc,
		CommentSvc:       commentSvc,
		FeedbackSvc:      feedbackSvc,
		SupportSvc:       supportSvc,
		NotificationsSvc: notificationsSvc,
		UserSvc:          userSvc,
		Autosave:         drafts,
		Media:            mediaHandler,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// graceful shutdown
	go func() {
		log.Printf("API listening on :%s (project=%s)", cfg.Port, cfg.ProjectID)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen failed: %v", err)
		}
	}()

	stop := make(chan os.Signal, 2)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	log.Println("shutting down...")
	_ = srv.Shutdown(ctxShutdown)
	stopBackground()

	// editors' unsaved changes are written before exit
	drafts.FlushAll(ctxShutdown)
	drafts.Close()
}
