package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/lox/handcricket/cmd/handcricket/shared"
	"github.com/lox/handcricket/internal/detector"
	"github.com/lox/handcricket/internal/game"
)

// FeedCmd reads finger counts from stdin and streams them to a detector
// server, standing in for a camera
type FeedCmd struct {
	Server string        `default:"localhost:8090" help:"Detector server address or URL"`
	Repeat time.Duration `default:"200ms" help:"How often to resend the held count so it stays fresh"`
}

// feed holds the last count typed and resends it until it changes
type feed struct {
	mu     sync.Mutex
	client *detector.Client
	count  int // 0 when the hand is down
	logger *log.Logger
}

func (c *FeedCmd) Run(g *Globals) error {
	cfg, err := g.loadConfig()
	if err != nil {
		return err
	}
	logger, err := shared.SetupLogger(cfg.UI.LogLevel)
	if err != nil {
		return err
	}

	ctx, cancel := shared.SetupSignalHandler(logger)
	defer cancel()

	client, err := detector.Dial(ctx, c.Server, logger)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()

	client.AddEventHandler(detector.MessageTypeAck, func(msg *detector.Message) {
		var ack detector.AckData
		if err := json.Unmarshal(msg.Data, &ack); err == nil {
			logger.Info("Command acknowledged", "command", ack.Command, "queued", ack.Queued)
		}
	})

	f := &feed{client: client, logger: logger}
	repeater := quartz.NewReal().TickerFunc(ctx, c.Repeat, f.resend, "feed")

	fmt.Fprintln(os.Stderr, "Type 1-6 to show fingers, 0 to lower your hand, or start/restart/quit.")
	lines := make(chan error, 1)
	go func() { lines <- f.readLines(os.Stdin) }()

	select {
	case err = <-lines:
	case <-client.Done():
		err = errors.New("detector server closed the connection")
	case <-ctx.Done():
	}
	cancel()
	if werr := repeater.Wait(); werr != nil && !errors.Is(werr, context.Canceled) && err == nil {
		err = werr
	}
	return err
}

// readLines sends one update per input line until EOF
func (f *feed) readLines(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		if err := f.handle(strings.TrimSpace(scanner.Text())); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func (f *feed) handle(line string) error {
	if line == "" {
		return nil
	}

	if n, err := strconv.Atoi(line); err == nil {
		if n < 0 || n > 6 {
			f.logger.Warn("Finger count must be 0-6", "input", line)
			return nil
		}
		f.mu.Lock()
		f.count = n
		f.mu.Unlock()
		return f.resend()
	}

	switch strings.ToLower(line) {
	case "none", "-":
		return f.handle("0")
	}

	cmd, err := game.ParseCommand(strings.ToLower(line))
	if err != nil {
		f.logger.Warn("Ignoring input", "input", line, "error", err)
		return nil
	}
	return f.client.SendCommand(cmd.String())
}

// resend repeats the held count, keeping it younger than the server's
// staleness window
func (f *feed) resend() error {
	f.mu.Lock()
	count := f.count
	f.mu.Unlock()

	if count == 0 {
		return f.client.SendNone()
	}
	return f.client.SendCount(count)
}
