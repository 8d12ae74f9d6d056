package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"
)

type testMessage struct {
	Fail bool
}

func (testMessage) Type() string { return "corpus.test_message" }

func (m testMessage) Validate() error {
	if m.Fail {
		return errors.New("message invalid")
	}
	return nil
}

func TestHandlerExecuteSuccess(t *testing.T) {
	called := false
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		called = true
		return nil
	})

	if err := handler.Execute(context.Background(), testMessage{}); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !called {
		t.Fatal("expected the wrapped function to run")
	}
}

func TestHandlerExecuteValidationFailure(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		t.Fatal("execution must not run on validation failure")
		return nil
	})

	err := handler.Execute(context.Background(), testMessage{Fail: true})
	if err == nil {
		t.Fatal("expected a validation error")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected a validation category error, got %v", err)
	}
}

func TestHandlerExecuteWrapsFailures(t *testing.T) {
	boom := errors.New("scan blew up")
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		return boom
	})

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, boom) {
		t.Fatalf("expected the cause preserved, got %v", err)
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected a command category error, got %v", err)
	}
}

func TestHandlerExecuteCancelledContext(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		t.Fatal("execution must not run on a cancelled context")
		return nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := handler.Execute(ctx, testMessage{})
	if err == nil {
		t.Fatal("expected a context error")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled preserved, got %v", err)
	}
}

func TestHandlerExecuteTimeout(t *testing.T) {
	handler := NewHandler(func(ctx context.Context, msg testMessage) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
			return nil
		}
	}, WithTimeout[testMessage](10*time.Millisecond))

	err := handler.Execute(context.Background(), testMessage{})
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded preserved, got %v", err)
	}
}

func TestHandlerNilFunctionPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic for a nil handler function")
		}
	}()
	NewHandler[testMessage](nil)
}
