package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strconv"
	"syscall"
	"time"

	"github.com/bugsnag/panicwrap"
	jsoniter "github.com/json-iterator/go"

	"github.com/pixelling/pixelling/src/configure"
	"github.com/pixelling/pixelling/src/global"
	"github.com/pixelling/pixelling/src/task"
	"github.com/sirupsen/logrus"
)

var (
	Version = "development"
	Unix    = ""
	Time    = "unknown"
	User    = "unknown"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func init() {
	if i, err := strconv.Atoi(Unix); err == nil {
		Time = time.Unix(int64(i), 0).Format(time.RFC3339)
	}
}

func main() {
	config := configure.New()

	exitStatus, err := panicwrap.BasicWrap(func(s string) {
		logrus.Error(s)
	})
	if err != nil {
		logrus.Error("failed to setup panic handler: ", err)
		os.Exit(2)
	}

	if exitStatus >= 0 {
		os.Exit(exitStatus)
	}

	if !config.NoHeader {
		logrus.Info("pixelling")
		logrus.Infof("Version: %s", Version)
		logrus.Infof("build.Time: %s", Time)
		logrus.Infof("build.User: %s", User)
	}

	logrus.Debug("MaxProcs: ", runtime.GOMAXPROCS(0))

	j, err := config.Job()
	if err != nil {
		logrus.Error(err)
		os.Exit(1)
	}

	c, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		logrus.Info("shutting down")
		cancel()
	}()

	ctx := global.New(c, config)

	tsk := task.New(j)

	file, err := tsk.Run(ctx)
	if events := tsk.Events(); len(events) > 0 {
		logrus.WithField("job", j.ID).Debug("stages: ", task.Since(events[0], events))
	}
	if err != nil {
		logrus.WithField("input", j.Input).Error(err)
		os.Exit(1)
	}

	logrus.WithFields(logrus.Fields{
		"output":   file.Name,
		"size":     file.Size,
		"frames":   file.Frames,
		"animated": file.Animated,
		"took":     file.TimeTaken,
	}).Info("done")

	if config.JSON {
		b, err := json.Marshal(file)
		if err != nil {
			logrus.Error(err)
			os.Exit(1)
		}
		fmt.Println(string(b))
	}
}
