package session

import (
	"bufio"
	"context"
	"fmt"
	"io"
)

// ConsolePrompt waits for an Enter keypress. The read runs in its own
// goroutine so a cancelled context still unblocks the caller: the wait is
// a suspension point, not a hang.
type ConsolePrompt struct {
	reader *bufio.Reader
}

func NewConsolePrompt(in io.Reader) *ConsolePrompt {
	return &ConsolePrompt{reader: bufio.NewReader(in)}
}

func (p *ConsolePrompt) AwaitResolution(ctx context.Context) error {
	fmt.Println("Press Enter after resolving issues to retry...")

	done := make(chan error, 1)
	go func() {
		_, err := p.reader.ReadString('\n')
		if err == io.EOF {
			err = fmt.Errorf("console closed before the challenge was resolved")
		}
		done <- err
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
