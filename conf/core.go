package conf

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/zeptools/invoicegen/cache"
	"github.com/zeptools/invoicegen/db/kvdb"
	"github.com/zeptools/invoicegen/db/kvdb/impls/redis"
	"github.com/zeptools/invoicegen/sec"
	"github.com/zeptools/invoicegen/svc"
	"github.com/zeptools/invoicegen/throttle"
	"github.com/zeptools/invoicegen/tpl"
	"github.com/zeptools/invoicegen/web"
)

// ThrottleGroupPDFGen - bucket group guarding the generate endpoint
const ThrottleGroupPDFGen = "pdfgen"

type ThrottleConf struct {
	Burst                   int `json:"burst"`
	Increment               int `json:"increment"`
	PeriodSeconds           int `json:"period_seconds"`
	CleanupCycleSeconds     int `json:"cleanup_cycle_seconds"`
	CleanupOlderThanSeconds int `json:"cleanup_older_than_seconds"`
}

type CacheConf struct {
	Enabled       bool   `json:"enabled"`
	TTLSeconds    int    `json:"ttl_seconds"`
	SealKeyBase64 string `json:"seal_key_base64"` // 32-byte key, URL-safe Base64, no padding
}

// Core - common config
type Core struct {
	AppName      string       `json:"app_name"`
	Listen       string       `json:"listen"` // HTTP Server Listen IP:PORT Address
	Host         string       `json:"host"`   // HTTP Host. Can be used to generate public url endpoints
	TemplateRoot string       `json:"template_root"`
	AuthSecret   string       `json:"auth_secret"` // empty disables bearer auth on the API
	Throttle     ThrottleConf `json:"throttle"`
	Cache        CacheConf    `json:"cache"`

	AppRoot             string                         `json:"-"` // Filled from compiled paths
	RootCtx             context.Context                `json:"-"` // Global Context with RootCancel
	RootCancel          context.CancelFunc             `json:"-"` // CancelFunc for RootCtx
	WebService          *web.Service                   `json:"-"` // PrepareWebService
	ThrottleBucketStore *throttle.BucketStore[string]  `json:"-"` // PrepareThrottleBucketStore
	KVDBConf            kvdb.Conf                      `json:"-"` // loadKVDBConf
	KVDBClient          kvdb.Client                    `json:"-"` // PrepareKVDatabase
	RenderCache         *cache.RenderCache             `json:"-"` // PrepareRenderCache
	HTMLTemplateStore   *tpl.HTMLTemplateStore         `json:"-"` // PrepareHTMLTemplateStore

	services []svc.Service // Services to Manage
	done     chan error
}

// BaseInit - 1st step for initialization
// 1. set AppRoot
// 2. load config/.core.json file
// 3. Start ShutdownSignalListener
func (c *Core) BaseInit(appRoot string, rootCtx context.Context, rootCancel context.CancelFunc) error {
	c.AppRoot = appRoot
	envFilePath := filepath.Join(appRoot, "config", ".core.json")
	envBytes, err := os.ReadFile(envFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(envBytes, c); err != nil {
		return err
	}
	c.RootCtx = rootCtx
	c.RootCancel = rootCancel
	c.startShutdownSignalListener()
	return nil
}

func (c *Core) AddService(s svc.Service) {
	log.Printf("[INFO] adding service: %s", s.Name())
	c.services = append(c.services, s)
	log.Printf("[INFO] total services: %d", len(c.services))
}

func (c *Core) StartServices() error {
	c.done = make(chan error, len(c.services))
	for _, s := range c.services {
		err := s.Start()
		if err != nil {
			return err
		}
		go func(s svc.Service) {
			err := <-s.Done()
			c.done <- err
		}(s) // pass the loop var to the param. otherwise, they are captured inside goroutine lazily
	}
	return nil
}

func (c *Core) WaitServicesDone() error {
	for i := 0; i < len(c.services); i++ {
		if err := <-c.done; err != nil {
			return err
		}
	}
	return nil
}

func (c *Core) StopServices() {
	for _, s := range c.services {
		s.Stop()
	}
}

var once sync.Once

func (c *Core) startShutdownSignalListener() {
	once.Do(func() {
		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			sig := <-sigs
			log.Printf("[INFO] got signal [%s]. shutting down app [%s] ...", sig, c.AppName)
			c.RootCancel() // broadcast to all child services via Context.Done()
		}()
	})
	log.Printf("[INFO][CORE] shutdown signal listener started")
}

func (c *Core) PrepareWebService(router http.Handler) {
	c.WebService = web.NewService(c.RootCtx, c.Listen, router)
	c.AddService(c.WebService)
}

// Throttle fallbacks for missing/zero config values. A zero period would
// divide by zero on refill and a zero cleanup cycle would panic the ticker.
const (
	defaultThrottleBurst           = 10
	defaultThrottleIncrement       = 1
	defaultThrottlePeriod          = time.Second
	defaultThrottleCleanupCycle    = time.Minute
	defaultThrottleCleanupOlderThn = time.Hour
)

func (c *Core) PrepareThrottleBucketStore() {
	burst := c.Throttle.Burst
	if burst <= 0 {
		burst = defaultThrottleBurst
	}
	increment := c.Throttle.Increment
	if increment <= 0 {
		increment = defaultThrottleIncrement
	}
	period := time.Duration(c.Throttle.PeriodSeconds) * time.Second
	if period <= 0 {
		period = defaultThrottlePeriod
	}
	cleanupCycle := time.Duration(c.Throttle.CleanupCycleSeconds) * time.Second
	if cleanupCycle <= 0 {
		cleanupCycle = defaultThrottleCleanupCycle
	}
	cleanupOlderThan := time.Duration(c.Throttle.CleanupOlderThanSeconds) * time.Second
	if cleanupOlderThan <= 0 {
		cleanupOlderThan = defaultThrottleCleanupOlderThn
	}
	c.ThrottleBucketStore = throttle.NewBucketStore[string](c.RootCtx, cleanupCycle, cleanupOlderThan)
	c.ThrottleBucketStore.SetBucketGroup(ThrottleGroupPDFGen, &throttle.BucketConf{
		Burst:     burst,
		Increment: increment,
		Period:    period,
	})
	c.AddService(c.ThrottleBucketStore)
}

func (c *Core) PrepareKVDatabase() error {
	// Load KV Database Config File
	if err := c.loadKVDBConf(); err != nil {
		return err
	}
	return c.prepareKVDBClient()
}

func (c *Core) loadKVDBConf() error {
	confFilePath := filepath.Join(c.AppRoot, "config", ".kv-databases.json")
	confBytes, err := os.ReadFile(confFilePath) // ([]byte, error)
	if err != nil {
		return err
	}
	return json.Unmarshal(confBytes, &c.KVDBConf)
}

func (c *Core) prepareKVDBClient() error {
	switch c.KVDBConf.Type {
	case "redis":
		c.KVDBClient = &redis.Client{Conf: &c.KVDBConf}
		if err := c.KVDBClient.Init(); err != nil {
			return err
		}
	// case "memcached"
	default:
		return errors.New("unsupported key-value database type")
	}
	return nil
}

// PrepareRenderCache - needs the KV client. Use after PrepareKVDatabase
func (c *Core) PrepareRenderCache() error {
	if c.KVDBClient == nil {
		return errors.New("render cache requires a kv database client")
	}
	sealKey, err := base64.RawURLEncoding.DecodeString(c.Cache.SealKeyBase64)
	if err != nil {
		return fmt.Errorf("decoding cache seal key: %w", err)
	}
	cipher, err := sec.NewXChaCha20Poly1305Cipher(sealKey)
	if err != nil {
		return fmt.Errorf("preparing cache cipher: %w", err)
	}
	c.RenderCache = cache.NewRenderCache(c.KVDBClient, cipher, time.Duration(c.Cache.TTLSeconds)*time.Second)
	log.Printf("[INFO][CORE] render cache enabled ttl=%ds", c.Cache.TTLSeconds)
	return nil
}

func (c *Core) PrepareHTMLTemplateStore() error {
	c.HTMLTemplateStore = tpl.NewHTMLTemplateStore()
	tplRoot := c.TemplateRoot
	if !filepath.IsAbs(tplRoot) {
		tplRoot = filepath.Join(c.AppRoot, tplRoot)
	}
	return c.HTMLTemplateStore.LoadBaseTemplates(tplRoot)
}
