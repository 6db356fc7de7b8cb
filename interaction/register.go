package interaction

import (
	"context"
	"fmt"
	"strings"

	"github.com/infigaming-com/xe-bot/request"
	"go.uber.org/zap"
)

// Registrar publishes a registry's command schema to the chat platform,
// replacing whatever commands the application had before.
type Registrar struct {
	lg       *zap.Logger
	apiURL   string
	appID    string
	botToken string
}

func NewRegistrar(lg *zap.Logger, apiURL, appID, botToken string) *Registrar {
	return &Registrar{
		lg:       lg,
		apiURL:   strings.TrimRight(apiURL, "/"),
		appID:    appID,
		botToken: botToken,
	}
}

func (r *Registrar) Register(ctx context.Context, registry *Registry) error {
	defs := registry.Definitions()
	url := fmt.Sprintf("%s/applications/%s/commands", r.apiURL, r.appID)

	statusCode, responseBody, err := request.PutJson(ctx, url, defs,
		request.WithLogger(r.lg),
		request.WithRequestHeaders(map[string]string{"Authorization": "Bot " + r.botToken}),
		request.WithRetry(2),
	)
	if err != nil {
		return err
	}
	if statusCode < 200 || statusCode > 299 {
		return ErrRegistrationRejected.Wrap(fmt.Errorf("status code: %d, response: %s", statusCode, string(responseBody)))
	}

	r.lg.Info("commands registered", zap.Int("count", len(defs)), zap.String("appId", r.appID))
	return nil
}
