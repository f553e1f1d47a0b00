package logger_test

import (
	"context"
	"errors"
	"testing"

	"github.com/tribeline/scorekeep/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func TestLogger(t *testing.T) {
	Convey("Given an initialized global logger", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("When fetching and naming it", func() {
			log := logger.Get()
			So(log, ShouldNotBeNil)
			So(logger.Named("engine"), ShouldNotBeNil)
		})

		Convey("When logging with fields", func() {
			log := logger.Get()
			ctx := context.Background()

			So(func() {
				log.Info(ctx, "message",
					logger.String("key", "value"),
					logger.Int("count", 3),
					logger.Int64("id", int64(9)),
					logger.Float64("score", 1.5),
					logger.Any("raw", struct{}{}),
					logger.Error(errors.New("boom")),
				)
				log.Debug(ctx, "message")
				log.Warn(ctx, "message")
				log.Error(ctx, "message")
			}, ShouldNotPanic)
		})
	})

	Convey("Given the level setter", t, func() {
		So(logger.Init(), ShouldBeNil)

		Convey("Then known levels parse", func() {
			So(logger.SetLevelString("debug"), ShouldBeNil)
			So(logger.SetLevelString("INFO"), ShouldBeNil)
			So(logger.SetLevelString("warning"), ShouldBeNil)
			So(logger.SetLevelString("error"), ShouldBeNil)
			So(logger.SetLevelString(""), ShouldBeNil)
		})

		Convey("Then unknown levels are rejected", func() {
			So(logger.SetLevelString("loud"), ShouldNotBeNil)
		})
	})

	Convey("Given the nop logger", t, func() {
		log := logger.Nop()
		ctx := context.Background()

		Convey("Then it swallows everything silently", func() {
			So(func() {
				log.Info(ctx, "dropped")
				log.Named("sub").Error(ctx, "dropped")
			}, ShouldNotPanic)
		})
	})
}
