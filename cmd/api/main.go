package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"agriconnect/internal/alert"
	"agriconnect/internal/catalog"
	"agriconnect/internal/config"
	"agriconnect/internal/httpserver"
	"agriconnect/internal/kv"
	"agriconnect/internal/session"
	cartstore "agriconnect/internal/store/cart"
	chatstore "agriconnect/internal/store/chat"
	notificationstore "agriconnect/internal/store/notification"
)

func main() {
	cfg := config.FromEnv()
	logger := log.New(os.Stdout, "[api] ", log.LstdFlags|log.LUTC|log.Lshortfile)

	ctx := context.Background()
	store, closeStore, err := kv.Open(ctx, cfg.KVBackend, cfg.DBConnString, cfg.RedisAddr, cfg.KVNamespace)
	if err != nil {
		logger.Fatalf("open %s kv store: %v", cfg.KVBackend, err)
	}
	defer closeStore()

	sink := alert.NewLogSink(logger)
	sess := session.NewManager(store)
	if err := sess.Restore(ctx); err != nil {
		logger.Fatalf("restore session: %v", err)
	}

	chat := chatstore.New(store, chatstore.DefaultKey, cfg.ChatReplyDelay, logger)
	if err := chat.Restore(ctx); err != nil {
		logger.Fatalf("restore chat transcript: %v", err)
	}
	defer chat.Close()

	srv, err := httpserver.New(cfg.HTTPAddr, logger, httpserver.Deps{
		KV:            store,
		Session:       sess,
		Cart:          cartstore.New(store, sess, sink),
		Notifications: notificationstore.New(store, sess, sink),
		Chat:          chat,
		Catalog:       catalog.New(store),
		CheckoutDelay: cfg.CheckoutDelay,
	})
	if err != nil {
		logger.Fatalf("init server: %v", err)
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Printf("starting http server on %s", cfg.HTTPAddr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stopCh:
		logger.Printf("received signal %s, shutting down", sig)
	case err := <-serverErr:
		logger.Printf("server error: %v", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Printf("graceful shutdown failed: %v", err)
	} else {
		logger.Printf("server stopped")
	}
}
