package main

import (
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/jillest/goladder/internal/announce"
	"github.com/jillest/goladder/internal/back"
	"github.com/jillest/goladder/internal/config"
	"github.com/jillest/goladder/internal/web"
)

func serve(conf *config.Config, b *back.Back) error {
	signaled := make(chan os.Signal, 1)
	signal.Notify(signaled, syscall.SIGINT, syscall.SIGTERM)

	announcer, err := announce.New(conf.DiscordToken, conf.DiscordChannelID, b.RatingSystem())
	if err != nil {
		return err
	}

	server, err := web.NewServer(b, announcer, conf.ListenAddr, "resources")
	if err != nil {
		return err
	}

	var wg sync.WaitGroup
	done := make(chan struct{})
	go server.Serve(&wg, done)

	sig := <-signaled
	log.Printf("info: received signal %d", sig)

	close(done)
	wg.Wait()

	if err := announcer.Close(); err != nil {
		log.Printf("warning: unable to close announcer: %s", err)
	}

	log.Print("info: shutdown complete")

	return nil
}
