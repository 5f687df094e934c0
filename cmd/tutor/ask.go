package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/artem13815/tutor/pkg/cache"
	"github.com/artem13815/tutor/pkg/content"
	"github.com/artem13815/tutor/pkg/log"
	"github.com/artem13815/tutor/pkg/slides"
	"github.com/artem13815/tutor/pkg/tutor"
)

var (
	askDeck    string
	askSlide   int
	askExplain bool
)

var askCmd = &cobra.Command{
	Use:   `ask "<question>"`,
	Short: "Ask a question once, optionally about a local .pptx or .pdf file",
	Args: func(cmd *cobra.Command, args []string) error {
		if askExplain {
			return cobra.NoArgs(cmd, args)
		}
		return cobra.ExactArgs(1)(cmd, args)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		var flushLog func()
		ctx, flushLog = setupLogger(ctx)
		defer flushLog()

		var question string
		if len(args) > 0 {
			question = args[0]
		}
		res, err := runAsk(ctx, question)
		if err != nil {
			return err
		}
		source := res.Provider
		if res.Cached {
			source += " (cached)"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\n\n[%s]\n", strings.TrimSpace(res.Answer), source)
		return nil
	},
}

func init() {
	askCmd.Flags().StringVar(&askDeck, "deck", "", "path to a .pptx or .pdf file to use as supporting material")
	askCmd.Flags().IntVar(&askSlide, "slide", 0, "slide number within --deck")
	askCmd.Flags().BoolVar(&askExplain, "explain", false, "explain --slide of --deck instead of answering a question")
	rootCmd.AddCommand(askCmd)
}

func runAsk(ctx context.Context, question string) (tutor.AnswerResult, error) {
	var (
		ref       *content.Reference
		extractor content.Extractor = slides.NewExtractor(slides.FileLocator(""))
	)
	if askDeck != "" {
		abs, err := filepath.Abs(askDeck)
		if err != nil {
			return tutor.AnswerResult{}, err
		}
		// stable per path, so answers about one file share cache entries
		ref = &content.Reference{DeckID: uuid.NewSHA1(uuid.NameSpaceURL, []byte("file://"+abs)), Slide: askSlide}
		extractor = slides.NewExtractor(slides.FileLocator(abs))
	} else if askExplain || askSlide > 0 {
		return tutor.AnswerResult{}, errors.New("--slide and --explain require --deck")
	}

	svc, err := newTutor(ctx, cfg, cliCache(ctx), extractor)
	if err != nil {
		return tutor.AnswerResult{}, err
	}
	if askExplain {
		return svc.ExplainSlide(ctx, *ref)
	}
	return svc.Ask(ctx, question, ref)
}

// cliCache prefers the configured Redis and falls back to a process-local cache.
func cliCache(ctx context.Context) cache.Store {
	if cfg.RedisAddr != "" {
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err == nil {
			return cache.NewRedisStore(rdb)
		}
		log.FromCtx(ctx).Debug().Err(err).Msg("redis unavailable, using in-memory cache")
	}
	return cache.NewMemoryStore()
}
