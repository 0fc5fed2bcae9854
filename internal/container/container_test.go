package container

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/garyjia/listing-compliance/internal/ai"
	"github.com/garyjia/listing-compliance/internal/application/service"
	infraLark "github.com/garyjia/listing-compliance/internal/infrastructure/external/lark"
	"github.com/garyjia/listing-compliance/internal/infrastructure/external/openai"
	"github.com/garyjia/listing-compliance/pkg/database"
)

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Database.Path = database.MemoryPath
	return cfg
}

func TestConfig_Validate(t *testing.T) {
	cfg := testConfig()
	require.NoError(t, cfg.Validate())

	cfg.OpenAI.Enabled = true
	assert.ErrorContains(t, cfg.Validate(), "openai.api_key")

	cfg = testConfig()
	cfg.Lark.Enabled = true
	cfg.Lark.AppID = "cli_app"
	cfg.Lark.AppSecret = "secret"
	assert.ErrorContains(t, cfg.Validate(), "reviewer_open_id")

	cfg = testConfig()
	cfg.Database.Path = ""
	assert.ErrorContains(t, cfg.Validate(), "database.path")
}

func TestNewContainer_RequiresConfigAndLogger(t *testing.T) {
	_, err := NewContainer(nil, zap.NewNop())
	assert.Error(t, err)

	_, err = NewContainer(testConfig(), nil)
	assert.Error(t, err)
}

func TestContainer_Lifecycle(t *testing.T) {
	c, err := NewContainer(testConfig(), zap.NewNop())
	require.NoError(t, err)
	assert.False(t, c.Ready())
	assert.False(t, c.Health().Overall)

	require.NoError(t, c.Start(context.Background()))
	assert.True(t, c.Ready())
	assert.Error(t, c.Start(context.Background()))

	health := c.Health()
	assert.True(t, health.Overall)
	assert.True(t, health.Components["database"].Healthy)
	assert.Equal(t, "disabled", health.Components["openai"].Message)

	require.NoError(t, c.Close())
	assert.False(t, c.Ready())
	assert.Error(t, c.Close())
	assert.Error(t, c.Start(context.Background()))
}

func TestContainer_WiresServices(t *testing.T) {
	c, err := NewContainer(testConfig(), zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, c.Start(context.Background()))
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	listing, err := c.Services().Listing.CreateListing(ctx, service.CreateListingInput{
		Address:   "12 Queen Street",
		Bedrooms:  3,
		DraftCopy: "A well-presented 3 bedroom house in a popular suburb, close to local schools.",
	})
	require.NoError(t, err)

	record, err := c.Services().Validation.ValidateListing(ctx, listing.ID)
	require.NoError(t, err)
	assert.Equal(t, listing.ID, record.ListingID)

	w := httptest.NewRecorder()
	c.Server().Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProvideAIValidator(t *testing.T) {
	logger := zap.NewNop()

	v, err := ProvideAIValidator(&OpenAIConfig{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &ai.BasicValidator{}, v)

	v, err = ProvideAIValidator(&OpenAIConfig{Enabled: true, APIKey: "sk-test", BaseURL: "http://localhost:1"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &openai.Validator{}, v)

	_, err = ProvideAIValidator(&OpenAIConfig{Enabled: true, APIKey: "sk-test", PromptsPath: "/does/not/exist.yaml"}, logger)
	assert.Error(t, err)
}

func TestProvideNotifier(t *testing.T) {
	logger := zap.NewNop()

	n, err := ProvideNotifier(&LarkConfig{}, logger)
	require.NoError(t, err)
	assert.IsType(t, &infraLark.NoopNotifier{}, n)

	n, err = ProvideNotifier(&LarkConfig{Enabled: true, AppID: "cli_app", AppSecret: "secret", ReviewerOpenID: "ou_1"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &infraLark.Notifier{}, n)
}

func TestZapLoggerAdapter(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	adapter := &zapLoggerAdapter{logger: zap.New(core)}

	adapter.Info("Listing validated", "listing_id", int64(7), "score", 90, 42, "ignored")
	adapter.Error("Failed", "error", assert.AnError)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Listing validated", entries[0].Message)
	assert.Equal(t, map[string]interface{}{"listing_id": int64(7), "score": int64(90)}, entries[0].ContextMap())
	assert.Equal(t, zap.ErrorLevel, entries[1].Level)
}
