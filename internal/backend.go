package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/markusressel/hpfan/internal/api"
	"github.com/markusressel/hpfan/internal/configuration"
	"github.com/markusressel/hpfan/internal/driver"
	"github.com/markusressel/hpfan/internal/firmware"
	"github.com/markusressel/hpfan/internal/monitor"
	"github.com/markusressel/hpfan/internal/persistence"
	"github.com/markusressel/hpfan/internal/statistics"
	"github.com/markusressel/hpfan/internal/strategy"
	"github.com/markusressel/hpfan/internal/ui"
	"github.com/oklog/run"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RunDaemon() {
	config := configuration.CurrentConfig
	if config.Firmware.Backend == configuration.BackendAcpiCall && getProcessOwner() != "root" {
		ui.Fatal("Calling firmware methods requires root permissions, please run hpfan as root")
	}

	pers := persistence.NewPersistence(config.DbPath)
	if err := pers.Init(); err != nil {
		ui.Fatal("Unable to prepare database directory: %v", err)
	}

	fw, err := CreateFirmware(config.Firmware)
	if err != nil {
		ui.Fatal("Unable to initialize firmware backend: %v", err)
	}
	gateway := firmware.NewGateway(fw, config.Debug)
	fanDriver := InitializeDriver(gateway, config, pers)

	mon := monitor.New(fanDriver, monitor.Options{
		PollingRate: config.Monitor.PollingRate,
		WindowSize:  config.Monitor.RollingWindowSize,
		ExportPath:  config.Monitor.ExportPath,
		Persistence: pers,
	})

	ctx, cancel := context.WithCancel(context.Background())

	var g run.Group
	{
		if config.Statistics.Enabled {
			// === Prometheus Exporter
			firmwareCollector := statistics.NewFirmwareCollector()
			gateway.SetObserver(firmwareCollector.Observe)
			statistics.Register(firmwareCollector)
			statistics.Register(statistics.NewFanCollector(fanDriver))
			statistics.Register(statistics.NewDriverCollector(fanDriver))

			mux := http.NewServeMux()
			mux.Handle("/metrics", promhttp.Handler())
			server := &http.Server{Addr: fmt.Sprintf(":%d", config.Statistics.Port), Handler: mux}

			g.Add(func() error {
				ui.Info("Starting statistics server on port %d", config.Statistics.Port)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start prometheus metrics endpoint (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				ui.Info("Stopping statistics server...")
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := server.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping statistics server: " + err.Error())
				} else {
					ui.Info("Statistics server stopped.")
				}
			})
		}
	}
	{
		if config.Api.Enabled {
			// === REST Api
			var registerer prometheus.Registerer
			if config.Statistics.Enabled {
				registerer = prometheus.DefaultRegisterer
			}
			rest := api.CreateRestService(api.Dependencies{
				Driver:  fanDriver,
				Monitor: mon,
				SelectionChanged: func(selection persistence.Selection) {
					if err := pers.SaveSelection(selection); err != nil {
						ui.Warning("Unable to persist strategy selection: %v", err)
					}
				},
				Registerer: registerer,
			})
			addr := fmt.Sprintf("%s:%d", config.Api.Host, config.Api.Port)

			g.Add(func() error {
				ui.Info("Starting REST api on %s", addr)
				if err := rest.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					ui.Error("Cannot start REST api (%s)", err.Error())
					return err
				}
				return nil
			}, func(err error) {
				timeoutCtx, timeoutCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer timeoutCancel()
				if err := rest.Shutdown(timeoutCtx); err != nil {
					ui.Warning("Error stopping REST api: %v", err)
				}
			})
		}
	}
	{
		// === fan monitoring
		g.Add(func() error {
			err := mon.Run(ctx)
			ui.Info("Fan monitor stopped.")
			return err
		}, func(err error) {
			if err != nil {
				ui.ErrorAndNotify("Fan monitor failed", "Error monitoring fans: %v", err)
			}
			cancel()
		})
	}
	{
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)

		g.Add(func() error {
			select {
			case <-sig:
				ui.Info("Received SIGTERM signal, exiting...")
			case <-ctx.Done():
			}
			return nil
		}, func(err error) {
			signal.Stop(sig)
			cancel()
		})
	}

	if err := g.Run(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	} else {
		ui.Info("Done.")
		os.Exit(0)
	}
}

// CreateDriver builds the firmware backend and the driver for one-shot commands.
// Persisted selections are only applied if the database already exists.
func CreateDriver(config configuration.Configuration) (*driver.Driver, *firmware.Gateway, error) {
	fw, err := CreateFirmware(config.Firmware)
	if err != nil {
		return nil, nil, err
	}
	gateway := firmware.NewGateway(fw, config.Debug)

	var pers persistence.Persistence
	if _, err := os.Stat(config.DbPath); err == nil {
		pers = persistence.NewPersistence(config.DbPath)
	}
	return InitializeDriver(gateway, config, pers), gateway, nil
}

// InitializeDriver creates the fan driver from the configured strategies,
// with selections persisted at runtime taking precedence.
func InitializeDriver(gateway driver.Gateway, config configuration.Configuration, pers persistence.Persistence) *driver.Driver {
	readType, ctrlType := config.ReadType, config.CtrlType
	if pers != nil {
		selection, err := pers.LoadSelection()
		if err == nil {
			readType, ctrlType = applySelection(selection, readType, ctrlType)
		} else if !errors.Is(err, os.ErrNotExist) {
			ui.Warning("Unable to load persisted strategy selection: %v", err)
		}
	}

	fanDriver := driver.New(gateway, driver.Options{
		ReadStrategy:    readType,
		ControlStrategy: ctrlType,
		Debug:           config.Debug,
	})

	state := fanDriver.State()
	if readType == strategy.ReadUnset {
		if state.ReadStrategy == strategy.ReadNone {
			ui.WarningAndNotify("No fan read method", "None of the known firmware methods for reading fan speeds exist, fan speeds will read as 0")
		} else {
			ui.Info("Detected read strategy: %s", state.ReadStrategy)
		}
	}
	if ctrlType == strategy.ControlUnset {
		ui.Info("No control strategy configured, fan control stays with the firmware. Use 'hpfan config ctrltype <token>' to select one.")
	}
	ui.Info("Fan channels: %d", state.ChannelCount)

	return fanDriver
}

func applySelection(selection persistence.Selection, readType strategy.ReadStrategy, ctrlType strategy.ControlStrategy) (strategy.ReadStrategy, strategy.ControlStrategy) {
	if len(selection.ReadType) > 0 {
		s, err := strategy.ParseReadStrategy(selection.ReadType)
		if err != nil {
			ui.Warning("Ignoring persisted read strategy: %v", err)
		} else {
			readType = s
		}
	}
	if len(selection.CtrlType) > 0 {
		s, err := strategy.ParseControlStrategy(selection.CtrlType)
		if err != nil {
			ui.Warning("Ignoring persisted control strategy: %v", err)
		} else {
			ctrlType = s
		}
	}
	return readType, ctrlType
}

func getProcessOwner() string {
	stdout, err := exec.Command("ps", "-o", "user=", "-p", strconv.Itoa(os.Getpid())).Output()
	if err != nil {
		ui.Fatal("Error checking process owner: %v", err)
	}
	return strings.TrimSpace(string(stdout))
}
