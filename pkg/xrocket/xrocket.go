// Copyright 2022 The xrocket Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package xrocket

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	kitlog "github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/jackal-xmpp/xrocket/pkg/auth"
	"github.com/jackal-xmpp/xrocket/pkg/bosh"
	"github.com/jackal-xmpp/xrocket/pkg/c2s"
	"github.com/jackal-xmpp/xrocket/pkg/component"
	"github.com/jackal-xmpp/xrocket/pkg/host"
	"github.com/jackal-xmpp/xrocket/pkg/log"
	"github.com/jackal-xmpp/xrocket/pkg/router"
	"github.com/jackal-xmpp/xrocket/pkg/storage"
	"github.com/jackal-xmpp/xrocket/pkg/storage/repository"
	"github.com/jackal-xmpp/xrocket/pkg/version"
)

const (
	darwinOpenMax = 10240

	defaultBootstrapTimeout = time.Minute
	defaultShutdownTimeout  = time.Second * 30

	envConfigFile = "XROCKET_CONFIG_FILE"
)

var logoStr = []string{
	`                           _        _   `,
	`__  ___ __ ___   ___ _ __ | | _____| |_ `,
	`\ \/ / '__/ _ \ / __| '_ \| |/ / _ \ __|`,
	` >  <| | | (_) | (__| | | |   <  __/ |_ `,
	`/_/\_\_|  \___/ \___|_| |_|_|\_\___|\__|`,
}

const usageStr = `
Usage: xrocket [options]
Server Options:
    --config <file>    Configuration file path
Common Options:
    --help             Show this message
    --version          Print version information
`

type starter interface {
	Start(ctx context.Context) error
}

type stopper interface {
	Stop(ctx context.Context) error
}

type startStopper interface {
	starter
	stopper
}

type starterFunc func(ctx context.Context) error

func (f starterFunc) Start(ctx context.Context) error { return f(ctx) }

// Server is the root data structure for xrocket.
type Server struct {
	output io.Writer
	args   []string

	hosts      *host.Hosts
	rep        repository.Repository
	c2sRouter  *c2s.Router
	compRouter *component.Router
	comps      []*component.Component
	c2s        *c2s.C2S
	bosh       *bosh.Handler

	starters []starter
	stoppers []stopper

	waitStopCh chan os.Signal

	logger kitlog.Logger
}

// New makes a new xrocket server.
func New(output io.Writer, args []string) *Server {
	return &Server{
		output:     output,
		args:       args,
		waitStopCh: make(chan os.Signal, 1),
	}
}

// Run starts xrocket running, and blocks until it stops.
func (s *Server) Run() error {
	fs := flag.NewFlagSet("xrocket", flag.ExitOnError)
	fs.SetOutput(s.output)

	var configFile string
	var showVersion, showUsage bool

	fs.BoolVar(&showUsage, "help", false, "Show this message")
	fs.BoolVar(&showVersion, "version", false, "Print version information.")
	fs.StringVar(&configFile, "config", "config.yaml", "Configuration file path.")

	fs.Usage = func() {
		for i := range logoStr {
			_, _ = fmt.Fprintf(s.output, "%s\n", logoStr[i])
		}
		_, _ = fmt.Fprintf(s.output, "%s\n", usageStr)
	}
	_ = fs.Parse(s.args[1:])

	// print usage
	if showUsage {
		fs.Usage()
		return nil
	}
	// print version
	if showVersion {
		_, _ = fmt.Fprintf(s.output, "xrocket version: %v\n", version.Version)
		return nil
	}
	// if present, override config file url with env var
	if envCfgFile := os.Getenv(envConfigFile); len(envCfgFile) > 0 {
		configFile = envCfgFile
	}
	// load configuration
	cfg, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	// init logger
	s.logger = log.NewDefaultLogger(cfg.Logger)

	level.Info(s.logger).Log("msg", "xrocket is starting...",
		"version", version.Version,
		"go_ver", runtime.Version(),
		"go_os", runtime.GOOS,
		"go_arch", runtime.GOARCH,
	)
	// set maximum opened files limit
	if err := setRLimit(); err != nil {
		return err
	}
	if err := s.init(cfg); err != nil {
		return err
	}
	if err := s.bootstrap(); err != nil {
		return err
	}
	// ...wait for stop signal to shut down
	sig := s.waitForStopSignal()
	level.Info(s.logger).Log("msg", "received stop signal... shutting down...",
		"signal", sig.String(),
	)
	return s.shutdown()
}

func (s *Server) init(cfg *Config) error {
	s.hosts = host.NewHosts(cfg.Hosts)

	// init repository
	if err := s.initRepository(cfg.Storage); err != nil {
		return err
	}
	// init routers
	if err := s.initRouters(cfg.Auth); err != nil {
		return err
	}
	// init components & modules
	if err := s.initModules(cfg.Modules); err != nil {
		return err
	}
	// init client fronts
	s.c2s = c2s.New(cfg.C2S, s.hosts, s.c2sRouter, s.logger)
	s.registerStartStopper(s.c2s)

	s.bosh = bosh.NewHandler(cfg.BOSH, s.hosts.DefaultHostName(), s.c2s.Hub(), s.logger)

	// init HTTP server
	s.registerStartStopper(newHTTPServer(cfg.HTTPPort, []pathHandler{s.bosh, s.c2s.WebSocket()}, s.logger))
	return nil
}

func (s *Server) initRepository(cfg storage.Config) error {
	rep, err := storage.New(cfg, s.logger)
	if err != nil {
		return err
	}
	s.rep = rep
	s.registerStartStopper(s.rep)
	return nil
}

func (s *Server) initRouters(cfg AuthConfig) error {
	s.c2sRouter = c2s.NewRouter(s.logger)

	// LDAP and simple both serve PLAIN, a configured directory takes precedence
	if len(cfg.LDAP.Addr) > 0 {
		s.c2sRouter.AddAuthMethod(auth.NewLDAP(cfg.LDAP, s.logger))
	} else {
		simple := auth.NewSimple(cfg.Simple, s.rep, s.logger)
		s.c2sRouter.AddAuthMethod(simple)
		if len(cfg.Simple.UsersFile) > 0 {
			s.registerStarter(starterFunc(simple.LoadUsersFile))
		}
	}
	if len(cfg.OAuth2.UserInfoURL) > 0 {
		s.c2sRouter.AddAuthMethod(auth.NewOAuth2(cfg.OAuth2, s.logger))
	}
	s.compRouter = component.NewRouter(component.DispatchFirstMatch, s.logger)

	_, err := router.Chain(s.c2sRouter, s.compRouter)
	return err
}

func (s *Server) registerStartStopper(ss startStopper) {
	if ss == nil {
		return
	}
	s.starters = append(s.starters, ss)
	s.stoppers = append([]stopper{ss}, s.stoppers...)
}

func (s *Server) registerStarter(st starter) {
	s.starters = append(s.starters, st)
}

func (s *Server) bootstrap() error {
	// spin up all service subsystems
	ctx, cancel := context.WithTimeout(context.Background(), defaultBootstrapTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		// invoke all registered starters...
		for _, st := range s.starters {
			if err := st.Start(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) shutdown() error {
	// wait until shutdown has been completed
	ctx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	errCh := make(chan error, 1)
	go func() {
		// invoke all registered stoppers...
		for _, st := range s.stoppers {
			if err := st.Stop(ctx); err != nil {
				errCh <- err
				return
			}
		}
		errCh <- nil
	}()
	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Server) waitForStopSignal() os.Signal {
	signal.Notify(s.waitStopCh, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM)
	return <-s.waitStopCh
}

func setRLimit() error {
	var rLim syscall.Rlimit
	if err := syscall.Getrlimit(syscall.RLIMIT_NOFILE, &rLim); err != nil {
		return err
	}
	if rLim.Cur < rLim.Max {
		switch runtime.GOOS {
		case "darwin":
			// The max file limit is 10240, even though
			// the max returned by Getrlimit is 1<<63-1.
			// This is OPEN_MAX in sys/syslimits.h.
			rLim.Cur = darwinOpenMax
		default:
			rLim.Cur = rLim.Max
		}
		return syscall.Setrlimit(syscall.RLIMIT_NOFILE, &rLim)
	}
	return nil
}
