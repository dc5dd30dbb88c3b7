package main

import (
	"context"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/BruksfildServices01/barberpro/internal/logger"
)

func TestServe_ListenFailureStillDrains(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer busy.Close()

	drained := false
	srv := &http.Server{Addr: busy.Addr().String(), Handler: http.NotFoundHandler()}

	err = serve(context.Background(), srv, time.Second, func(context.Context) error {
		drained = true
		return nil
	}, logger.Discard())

	if err == nil {
		t.Fatal("expected the listen error to be returned")
	}
	if !drained {
		t.Error("expected drain to run after the listener failed")
	}
}

func TestServe_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	drained := make(chan struct{})

	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() {
		done <- serve(ctx, srv, time.Second, func(context.Context) error {
			close(drained)
			return nil
		}, logger.Discard())
	}()

	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("serve did not return after cancel")
	}

	select {
	case <-drained:
	default:
		t.Error("expected drain to run on shutdown")
	}
}
