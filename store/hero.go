package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	postgrest "github.com/supabase-community/postgrest-go"
	supa "github.com/supabase-community/supabase-go"

	"mgarquitectura/api-gateway/config"
	"mgarquitectura/api-gateway/models"
)

// Hero persists the ordered banner slide set shown on the home page. Saves
// replace the whole set; there is no per-slide incremental update.
type Hero struct {
	log    *logrus.Logger
	public *supa.Client
	admin  *supa.Client
	rpc    *rpcClient
}

func NewHero(log *logrus.Logger, clients *config.SupabaseClients) *Hero {
	return &Hero{
		log:    log,
		public: clients.Public,
		admin:  clients.Admin,
		rpc:    newRPCClient(clients.URL, clients.ServiceKey),
	}
}

// ListSlides returns the slides ordered by their position.
func (h *Hero) ListSlides(ctx context.Context) ([]models.HeroSlide, error) {
	body, _, err := h.public.From(heroSlidesTable).
		Select("*", "", false).
		Order("order", &postgrest.OrderOpts{Ascending: true}).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("fetching hero slides: %w", err)
	}

	var slides []models.HeroSlide
	if err := json.Unmarshal(body, &slides); err != nil {
		return nil, fmt.Errorf("decoding hero slides: %w", err)
	}
	return slides, nil
}

// ReplaceSlides swaps the persisted slide set for the given one. The
// replace_hero_slides database function performs the delete-all/insert-all
// inside one transaction; when it is not installed, the call falls back to
// two separate statements, which can race with a concurrent save.
func (h *Hero) ReplaceSlides(ctx context.Context, slides []models.HeroSlide) error {
	rows := make([]map[string]interface{}, 0, len(slides))
	now := time.Now()
	for _, s := range slides {
		rows = append(rows, map[string]interface{}{
			"title":       s.Title,
			"description": s.Description,
			"image_url":   s.ImageURL,
			"order":       s.Order,
			"created_at":  now,
		})
	}

	err := h.rpc.call("replace_hero_slides", map[string]interface{}{"p_slides": rows})
	if err == nil {
		h.log.Infof("Hero slides replaced: %d", len(rows))
		return nil
	}
	if !errors.Is(err, errFunctionMissing) {
		return fmt.Errorf("replacing hero slides: %w", err)
	}
	h.log.Warn("replace_hero_slides is not installed, using delete-then-insert fallback")

	if _, _, err := h.admin.From(heroSlidesTable).
		Delete("", "").
		Neq("id", uuid.Nil.String()).
		Execute(); err != nil {
		return fmt.Errorf("deleting existing slides: %w", err)
	}

	if _, _, err := h.admin.From(heroSlidesTable).
		Insert(rows, false, "", "minimal", "").
		Execute(); err != nil {
		return fmt.Errorf("inserting %d slides: %w", len(rows), err)
	}

	h.log.Infof("Hero slides replaced: %d", len(rows))
	return nil
}
