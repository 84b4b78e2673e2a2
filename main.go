package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/adnsv/panbook/build"
	"github.com/adnsv/panbook/logger"
	"github.com/adnsv/panbook/model"
	"github.com/adnsv/panbook/runner"
	"github.com/adnsv/panbook/watch"
	cli "github.com/jawher/mow.cli"
	_ "github.com/joho/godotenv/autoload"
	log "github.com/sirupsen/logrus"
)

func main() {
	projectFN := ""
	logLevel := ""
	noColor := false

	app := cli.App("panbook", "Markup -> HTML, web site, EPUB, MOBI and PDF documentation builder")
	app.Version("v version", app_version())
	app.StringOptPtr(&projectFN, "p project", model.DefaultProjectFile, "project file listing the sources")
	app.StringPtr(&logLevel, cli.StringOpt{
		Name:   "log-level",
		Value:  "info",
		EnvVar: "PANBOOK_LOG_LEVEL",
		Desc:   "debug, info, warn or error",
	})
	app.BoolOptPtr(&noColor, "no-color", false, "disable colored output")

	app.Before = func() {
		logger.Setup(os.Stderr, logLevel, noColor)
	}

	load := func() *model.Project {
		prj, err := model.LoadProject(projectFN)
		if err != nil {
			log.Fatal(err)
		}
		return prj
	}

	app.Command("build", "check the manifest, convert all formats and publish the release", func(cmd *cli.Cmd) {
		strict := false
		keepTemp := false
		date := ""
		cmd.Spec = "[--strict] [--keep-temp] [--date=<YYYYMMDD>]"
		cmd.BoolOptPtr(&strict, "strict", false, "abort on the first converter failure")
		cmd.BoolOptPtr(&keepTemp, "keep-temp", false, "keep intermediate files and tool logs")
		cmd.StringOptPtr(&date, "date", "", "date stamp to use instead of today")

		cmd.Action = func() {
			prj := load()
			// allow overriding some of the project parameters with cli args
			if strict {
				prj.Strict = true
			}
			if keepTemp {
				prj.KeepTemp = true
			}
			stamp := model.DateStamp(time.Now())
			if date != "" {
				t, err := time.Parse("20060102", date)
				if err != nil {
					log.Fatalf("invalid --date: %v", err)
				}
				stamp = model.DateStamp(t)
			}

			err := build.New(prj, stamp, runner.Exec{}).WithLog(logger.WithRun()).Run(context.Background())
			exitOnError(prj, err)
		}
	})

	app.Command("check", "verify the manifest and look for the converters on PATH", func(cmd *cli.Cmd) {
		cmd.Action = func() {
			prj := load()
			b := build.New(prj, model.DateStamp(time.Now()), runner.Exec{})
			exitOnError(prj, b.Check())

			book := len(prj.BookEntries())
			fmt.Printf("manifest ok: %d entries, %d in the book, %d website-only\n",
				len(prj.Sources), book, len(prj.Sources)-book)

			missing := runner.Lookup(prj.Tools.Pandoc, prj.Tools.Kindlegen, prj.Tools.Xelatex)
			for _, t := range missing {
				log.Warnf("%s not found on PATH\n", t)
			}
			if len(missing) > 0 {
				cli.Exit(1)
			}
		}
	})

	app.Command("watch", "build, then rebuild whenever a source file changes", func(cmd *cli.Cmd) {
		strict := false
		cmd.BoolOptPtr(&strict, "strict", false, "abort a rebuild on the first converter failure")

		cmd.Action = func() {
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			prj := load()
			rebuild := func(ctx context.Context) error {
				prj, err := model.LoadProject(projectFN)
				if err != nil {
					return err
				}
				if strict {
					prj.Strict = true
				}
				err = build.New(prj, model.DateStamp(time.Now()), runner.Exec{}).WithLog(logger.WithRun()).Run(ctx)
				var me *model.ManifestError
				if errors.As(err, &me) {
					fmt.Println(me.Report(prj))
				}
				return err
			}

			if err := rebuild(ctx); err != nil {
				log.Errorf("build failed: %v\n", err)
			}
			err := watch.Watch(ctx, watch.Options{
				Dir:       prj.Dir,
				Extension: prj.Extension,
				Extra: []string{
					filepath.Base(prj.File),
					prj.HTML.Head, prj.HTML.BeforeBody,
					prj.Website.Template, prj.Website.BeforeBody, prj.Website.AfterBody,
					prj.EPUB.TitlePage, prj.EPUB.Metadata, prj.EPUB.CSS,
					filepath.Base(prj.PDF.Master),
				},
			}, rebuild)
			if err != nil {
				log.Fatal(err)
			}
		}
	})

	app.Run(os.Args)
}

// exitOnError prints the manifest report for a manifest mismatch; any other
// error is fatal as is.
func exitOnError(prj *model.Project, err error) {
	if err == nil {
		return
	}
	var me *model.ManifestError
	if errors.As(err, &me) {
		fmt.Println(me.Report(prj))
		cli.Exit(1)
	}
	log.Fatal(err)
}
