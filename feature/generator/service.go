package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"animeapi/core/config"
	"animeapi/core/database"
	"animeapi/core/fetch"
	"animeapi/core/logger"
	"animeapi/core/storage"
	"animeapi/feature/generator/combiner"
	"animeapi/feature/generator/export"
	"animeapi/feature/generator/linker"
	"animeapi/feature/generator/models"
	"animeapi/feature/generator/sources"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// Service runs the generator pipeline. All state travels through this
// struct and the stage arguments; nothing is package-global, so two runs
// with different configs never bleed into each other.
type Service struct {
	cfg   *config.Config
	log   *zap.Logger
	db    *gorm.DB
	store storage.Client
}

// NewService wires the pipeline. db and store may be nil: without a db the
// run is not recorded, without a store nothing is published.
func NewService(cfg *config.Config, log *zap.Logger, db *gorm.DB, store storage.Client) *Service {
	return &Service{cfg: cfg, log: log, db: db, store: store}
}

// payload carries every fetched source dataset into the linking stages.
type payload struct {
	aod         *sources.AOD
	arm         []sources.ArmItem
	anitrakt    []sources.AniTraktItem
	fribb       []sources.FribbItem
	silveryasha []sources.SilverYashaAnime
	kaize       []sources.KaizeAnime
	nautiljon   []sources.NautiljonAnime
	otakotaku   []sources.OtakOtakuAnime
}

// Run executes the full pipeline: fetch, simplify, link, combine, export,
// record, publish.
func (s *Service) Run(ctx context.Context) error {
	started := time.Now().UTC()
	gen := s.cfg.Generator

	if err := os.MkdirAll(gen.RawDir, 0o755); err != nil {
		return fmt.Errorf("create raw dir: %w", err)
	}

	p, err := s.fetchAll(ctx)
	if err != nil {
		return err
	}

	anchors := Simplify(p.aod)
	s.log.Info("Anchor set simplified", zap.Int("total", len(anchors)))

	if err := s.linkAll(ctx, anchors, p); err != nil {
		return err
	}

	combiner.CombineArm(anchors, p.arm, s.log)
	combiner.CombineAniTrakt(anchors, p.anitrakt, s.log)
	combiner.CombineFribb(anchors, p.fribb, s.log)

	exporter := export.New(gen.DataDir, gen.APIDir, gen.ContributorsURL, s.log)
	status, err := exporter.Export(ctx, anchors)
	if err != nil {
		return err
	}

	if s.db != nil {
		if err := database.RecordRun(s.db, started, time.Now().UTC(), status.Counts["total"], status.Counts); err != nil {
			s.log.Warn("Run history not recorded", zap.Error(err))
		}
	}

	if gen.Publish && s.store != nil {
		pub := storage.NewPublisher(s.store, s.cfg.Storage.Bucket, s.log)
		if err := pub.Publish(ctx, exporter.Written()); err != nil {
			return fmt.Errorf("publish artifacts: %w", err)
		}
	}

	s.log.Info("Pipeline finished",
		zap.Int("total", status.Counts["total"]),
		zap.Duration("elapsed", time.Since(started)),
	)
	return nil
}

// fetchAll pulls every source concurrently. Scraped sources rate-limit
// themselves; the flat downloads share one downloader with a cache
// fallback.
func (s *Service) fetchAll(ctx context.Context) (*payload, error) {
	gen := s.cfg.Generator
	dl := fetch.NewDownloader(gen.RawDir, s.log)
	p := &payload{}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		p.aod, err = sources.GetAOD(gctx, dl, s.log)
		return err
	})
	g.Go(func() (err error) {
		p.arm, err = sources.GetArm(gctx, dl, s.log)
		return err
	})
	g.Go(func() (err error) {
		p.anitrakt, err = sources.GetAniTrakt(gctx, dl, s.log)
		return err
	})
	g.Go(func() (err error) {
		p.fribb, err = sources.GetFribb(gctx, dl, s.log)
		return err
	})
	g.Go(func() (err error) {
		p.silveryasha, err = sources.GetSilverYasha(gctx, dl, s.log)
		return err
	})
	g.Go(func() (err error) {
		p.kaize, err = sources.NewKaize(dl, gen.ScrapeRPS, s.log).GetAnime(gctx)
		return err
	})
	g.Go(func() (err error) {
		p.nautiljon, err = sources.NewNautiljon(dl, gen.ScrapeRPS, s.log).GetAnimes(gctx)
		return err
	})
	g.Go(func() (err error) {
		p.otakotaku, err = sources.NewOtakOtaku(dl, gen.ScrapeRPS, s.log).GetAnime(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return p, nil
}

// linkAll runs the match cascade for each scraped source, in a fixed order
// so later sources see the IDs the earlier ones contributed.
func (s *Service) linkAll(ctx context.Context, anchors []*models.Anime, p *payload) error {
	gen := s.cfg.Generator

	kaizeManual, err := sources.LoadKaizeManual(gen.RawDir)
	if err != nil {
		return err
	}
	nautiljonManual, err := sources.LoadNautiljonManual(gen.RawDir)
	if err != nil {
		return err
	}
	otakotakuManual, err := sources.LoadOtakOtakuManual(gen.RawDir)
	if err != nil {
		return err
	}
	silverYashaManual, err := sources.LoadSilverYashaManual(gen.RawDir)
	if err != nil {
		return err
	}

	adapters := []linker.Adapter{
		linker.NewKaizeAdapter(p.kaize, kaizeManual),
		linker.NewNautiljonAdapter(p.nautiljon, nautiljonManual),
		linker.NewOtakOtakuAdapter(p.otakotaku, otakotakuManual),
		linker.NewSilverYashaAdapter(p.silveryasha, silverYashaManual),
	}
	opts := linker.Options{Workers: gen.FuzzyWorkers}
	for _, src := range adapters {
		if err := ctx.Err(); err != nil {
			return err
		}
		res := linker.Link(src, anchors, opts, logger.WithPlatform(s.log, src.Name()))
		if err := s.writeResidue(src.Name(), res.Unlinked); err != nil {
			return err
		}
	}
	return nil
}

// writeResidue dumps the unlinked records for one source. The curated
// manual tables grow out of these files.
func (s *Service) writeResidue(name string, unlinked []map[string]any) error {
	if unlinked == nil {
		unlinked = []map[string]any{}
	}
	raw, err := json.MarshalIndent(unlinked, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s residue: %w", name, err)
	}
	path := filepath.Join(s.cfg.Generator.RawDir, name+"_unlinked.json")
	if err := os.WriteFile(path, raw, 0o644); err != nil {
		return fmt.Errorf("write %s residue: %w", name, err)
	}
	return nil
}
