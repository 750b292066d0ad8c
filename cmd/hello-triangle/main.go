package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/opengl-setup-test/hellogl/lib/config"
	"github.com/opengl-setup-test/hellogl/lib/demo"
	hlog "github.com/opengl-setup-test/hellogl/lib/log"
)

func init() {
	// The OpenGL stuff must be in one thread
	runtime.LockOSThread()
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [config file]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(flag.Arg(0), config.Triangle)
	if err != nil {
		log.Fatal(err)
	}
	err = hlog.Setup(cfg.LogLevel)
	if err != nil {
		log.Fatal(err)
	}

	d, err := demo.New(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = d.Run(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
