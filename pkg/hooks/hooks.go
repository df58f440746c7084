package hooks

import (
	"context"

	"github.com/cloudcarver/feedbackform/pkg/form"
	"github.com/cloudcarver/feedbackform/pkg/ticket"
	"golang.org/x/oauth2"
)

type OnUserLoggedIn func(ctx context.Context, token *oauth2.Token) error

type OnTicketCreated func(ctx context.Context, cr *form.ChangeRequest, result *ticket.Result) error

//go:generate mockgen -source=hooks.go -destination=mock_gen.go -package=hooks
type HookInterface interface {
	OnUserLoggedIn(ctx context.Context, token *oauth2.Token) error

	OnTicketCreated(ctx context.Context, cr *form.ChangeRequest, result *ticket.Result) error
}

type BaseHook struct {
	OnUserLoggedInHooks  []OnUserLoggedIn
	OnTicketCreatedHooks []OnTicketCreated
}

func NewBaseHook() *BaseHook {
	return &BaseHook{}
}

// RegisterOnUserLoggedInHook registers a hook function that is executed after
// the OAuth2 callback saved the token of the user.
func (b *BaseHook) RegisterOnUserLoggedInHook(hook OnUserLoggedIn) {
	b.OnUserLoggedInHooks = append(b.OnUserLoggedInHooks, hook)
}

// RegisterOnTicketCreatedHook registers a hook function that is executed after
// a ticket was created in the backend. The ticket exists even when the hook
// fails, so hooks must not assume the user sees the success page.
func (b *BaseHook) RegisterOnTicketCreatedHook(hook OnTicketCreated) {
	b.OnTicketCreatedHooks = append(b.OnTicketCreatedHooks, hook)
}

func (b *BaseHook) OnUserLoggedIn(ctx context.Context, token *oauth2.Token) error {
	for _, hook := range b.OnUserLoggedInHooks {
		if err := hook(ctx, token); err != nil {
			return err
		}
	}
	return nil
}

func (b *BaseHook) OnTicketCreated(ctx context.Context, cr *form.ChangeRequest, result *ticket.Result) error {
	for _, hook := range b.OnTicketCreatedHooks {
		if err := hook(ctx, cr, result); err != nil {
			return err
		}
	}
	return nil
}
