package appmanager

import (
	"fmt"
	"log/slog"
	"os"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"MerchantReports/api"
	"MerchantReports/api/merchant"
	"MerchantReports/internal/config"
	"MerchantReports/internal/dashboard"
	"MerchantReports/internal/jobs"
	"MerchantReports/internal/logger"
	"MerchantReports/internal/notification"
	"MerchantReports/internal/resource"
	"MerchantReports/internal/serviceiface"
	"MerchantReports/internal/store"
)

// Deps are the shared objects every service constructor may use.
type Deps struct {
	Config   *config.Config
	Store    *store.Store
	Activity *notification.NotificationService
	SSE      *dashboard.SSEServer
}

// Env builds the handler environment from the shared objects.
func (d *Deps) Env() *merchant.Env {
	return &merchant.Env{
		Store:          d.Store,
		Activity:       d.Activity,
		UploadDir:      d.Config.UploadDir,
		OutputDir:      d.Config.OutputDir,
		MaxUploadBytes: d.Config.MaxUploadBytes(),
	}
}

type Constructor func(cfg map[string]interface{}, deps *Deps) serviceiface.Service

var serviceConstructors = map[string]Constructor{
	"logger": func(cfg map[string]interface{}, deps *Deps) serviceiface.Service {
		l := logger.NewLoggerService(cfg)
		// Environment overrides the yaml block.
		if os.Getenv("LOG_DIR") != "" {
			l.SetFolder(deps.Config.LogDir)
		}
		if os.Getenv("LOG_LEVEL") != "" {
			l.SetLevel(logger.ParseLevel(deps.Config.LogLevel))
		}
		return l
	},
	"resourcemanager": func(cfg map[string]interface{}, deps *Deps) serviceiface.Service {
		var clients resource.ClientCounter
		if deps.SSE != nil {
			clients = deps.SSE
		}
		rm := resource.NewResourceManagerService(cfg, deps.Store, clients)
		rm.AddDir("upload", deps.Config.UploadDir)
		rm.AddDir("output", deps.Config.OutputDir)
		return rm
	},
	"cron": func(cfg map[string]interface{}, deps *Deps) serviceiface.Service {
		return jobs.NewCronService(cfg, deps.Config.OutputDir)
	},
	"gateway": func(cfg map[string]interface{}, deps *Deps) serviceiface.Service {
		port := ""
		if os.Getenv("PORT") != "" || cfg["port"] == nil {
			port = deps.Config.Port
		}
		return api.NewGatewayService(cfg, api.NewRouter(deps.Env(), deps.SSE), port)
	},
}

// ------------------- MANAGER -------------------

type AppManager struct {
	services []serviceiface.Service
	deps     *Deps
	mu       sync.Mutex
}

func NewAppManager(deps *Deps) *AppManager {
	return &AppManager{
		services: make([]serviceiface.Service, 0),
		deps:     deps,
	}
}

func (am *AppManager) RegisterService(s serviceiface.Service) {
	am.mu.Lock()
	defer am.mu.Unlock()
	am.services = append(am.services, s)
}

// StartAll starts services in registration order; the gateway goes last
// so directories exist before the first upload.
func (am *AppManager) StartAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()

	for _, service := range am.services {
		if service.Name() == "gateway" {
			continue
		}
		if err := am.start(service); err != nil {
			return err
		}
	}
	for _, service := range am.services {
		if service.Name() == "gateway" {
			if err := am.start(service); err != nil {
				return err
			}
		}
	}
	return nil
}

func (am *AppManager) start(service serviceiface.Service) error {
	slog.Info("Starting service", "service", service.Name())
	if err := service.Start(); err != nil {
		return fmt.Errorf("failed to start service %s: %w", service.Name(), err)
	}
	return nil
}

// StopAll stops in reverse order and keeps going past failures.
func (am *AppManager) StopAll() error {
	am.mu.Lock()
	defer am.mu.Unlock()
	var first error
	for i := len(am.services) - 1; i >= 0; i-- {
		svc := am.services[i]
		if err := svc.Stop(); err != nil && first == nil {
			first = fmt.Errorf("failed to stop service %s: %w", svc.Name(), err)
		}
	}
	return first
}

// ------------------- YAML CONFIG -------------------

type ServiceSequencer struct {
	Services []ServiceConfig `yaml:"services"`
}

type ServiceConfig struct {
	Name       string                 `yaml:"name"`
	StartOrder int                    `yaml:"start_order"`
	Config     map[string]interface{} `yaml:"config"`
}

func LoadServiceSequence(path string) ([]ServiceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseServiceSequence(data)
}

func ParseServiceSequence(data []byte) ([]ServiceConfig, error) {
	var seq ServiceSequencer
	if err := yaml.Unmarshal(data, &seq); err != nil {
		return nil, err
	}

	// sort by start_order
	sort.SliceStable(seq.Services, func(i, j int) bool {
		return seq.Services[i].StartOrder < seq.Services[j].StartOrder
	})

	return seq.Services, nil
}

// DefaultServiceSequence is used when no services.yaml is present.
func DefaultServiceSequence() []ServiceConfig {
	return []ServiceConfig{
		{Name: "logger", StartOrder: 1},
		{Name: "resourcemanager", StartOrder: 2},
		{Name: "cron", StartOrder: 3},
		{Name: "gateway", StartOrder: 4},
	}
}

func (am *AppManager) AutoRegisterServices(configs []ServiceConfig) {
	for _, svc := range configs {
		constructor, ok := serviceConstructors[svc.Name]
		if !ok {
			slog.Warn("Unknown service in sequence", "service", svc.Name)
			continue
		}
		if enabled, ok := svc.Config["enabled"].(bool); ok && !enabled {
			continue
		}
		am.RegisterService(constructor(svc.Config, am.deps))
	}

	for _, svc := range am.services {
		if l, ok := svc.(*logger.LoggerService); ok {
			logger.SetGlobalLogger(l)
			break
		}
	}
}

func (am *AppManager) GetServiceByName(name string) serviceiface.Service {
	am.mu.Lock()
	defer am.mu.Unlock()
	for _, svc := range am.services {
		if svc.Name() == name {
			return svc
		}
	}
	return nil
}

// Services lists registered service names in start order.
func (am *AppManager) Services() []string {
	am.mu.Lock()
	defer am.mu.Unlock()
	names := make([]string, len(am.services))
	for i, svc := range am.services {
		names[i] = svc.Name()
	}
	return names
}
