/*
 * Copyright 2025 Comcast Cable Communications Management, LLC
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"

	"github.com/comcast/maasaudit/audit"
	"github.com/comcast/maasaudit/buildinfo"
	"github.com/comcast/maasaudit/common"
	"github.com/comcast/maasaudit/config"
	"github.com/comcast/maasaudit/http/handlers"
	"github.com/comcast/maasaudit/logger"
	"github.com/comcast/maasaudit/middleware/logging"
	"github.com/comcast/maasaudit/middleware/muxprom"
	ma_vault "github.com/comcast/maasaudit/vault"
	"go.uber.org/zap"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gopkg.in/alecthomas/kingpin.v2"
)

const app = "maasauditd"

var (
	a                  = kingpin.New(app, "MAAS hardware requirements audit service")
	source             = a.Flag("source", "inventory source to query").PlaceHolder("[cli|api]").Default("cli").Envar("MAAS_SOURCE").Enum("cli", "api")
	maasBinary         = a.Flag("maas.binary", "path to the maas CLI binary").Default("maas").Envar("MAAS_BINARY").String()
	maasTimeout        = a.Flag("maas.timeout", "timeout for maas CLI invocations").Default("2m").Envar("MAAS_TIMEOUT").Duration()
	apiEndpoint        = a.Flag("api.endpoint", "MAAS API endpoint, i.e. http://maas.example.com:5240/MAAS").Default("").Envar("MAAS_ENDPOINT").String()
	apiKey             = a.Flag("api.key", "MAAS API key in consumer:token:secret form").Default("").Envar("MAAS_API_KEY").String()
	insecureSkipVerify = a.Flag("insecure-skip-verify", "Skip TLS verification").Default("false").Envar("INSECURE_SKIP_VERIFY").Bool()
	logLevel           = a.Flag("log.level", "log level verbosity").PlaceHolder("[debug|info|warn|error]").Default("info").Envar("LOG_LEVEL").String()
	logMethod          = a.Flag("log.method", "alternative method for logging in addition to stdout").PlaceHolder("[file|vector]").Default("").Envar("LOG_METHOD").String()
	logFilePath        = a.Flag("log.file-path", "directory path where log files are written if log-method is file").Default("/var/log/maasaudit").Envar("LOG_FILE_PATH").String()
	logFileMaxSize     = a.Flag("log.file-max-size", "max file size in megabytes if log-method is file").Default("256").Envar("LOG_FILE_MAX_SIZE").String()
	logFileMaxBackups  = a.Flag("log.file-max-backups", "max file backups before they are rotated if log-method is file").Default("1").Envar("LOG_FILE_MAX_BACKUPS").String()
	logFileMaxAge      = a.Flag("log.file-max-age", "max file age in days before they are rotated if log-method is file").Default("1").Envar("LOG_FILE_MAX_AGE").String()
	vectorEndpoint     = a.Flag("vector.endpoint", "vector endpoint to send structured json logs to").Default("http://0.0.0.0:4444").Envar("VECTOR_ENDPOINT").String()
	port               = a.Flag("port", "service port").Default("10024").Envar("MAASAUDITD_PORT").String()
	vaultAddr          = a.Flag("vault.addr", "Vault instance address to get MAAS API keys from").Default("https://vault.com").Envar("VAULT_ADDRESS").String()
	vaultRoleId        = a.Flag("vault.role-id", "Vault Role ID for AppRole").Default("").Envar("VAULT_ROLE_ID").String()
	vaultSecretId      = a.Flag("vault.secret-id", "Vault Secret ID for AppRole").Default("").Envar("VAULT_SECRET_ID").String()
	_                  = common.AuditProf(a.Flag("audit.profiles",
		`profile(s) overriding audit requirements or MAAS API access, i.e.
  --audit.profiles="
    profiles:
      - name: profile1
        minConnectedNICs: 3
        apiEndpoint: "http://maas.example.com:5240/MAAS"
        vaultMountPath: "kv2"
        vaultPath: "path/to/secret"
        keyField: "api_key"
      ...
  "
--audit.profiles='{"profiles":[{"name":"profile1","minConnectedNICs":3},...]}'`))

	log *zap.Logger

	vault *ma_vault.Vault
)

var wg = sync.WaitGroup{}

func main() {
	ctx := context.Background()
	doneRenew := make(chan bool, 1)
	tokenLifecycle := make(chan bool, 1)

	nodename, err := os.Hostname()
	if err != nil {
		nodename = ""
	}

	a.HelpFlag.Short('h')

	_, err = a.Parse(os.Args[1:])
	if err != nil {
		panic(fmt.Errorf("error parsing argument flags - %s", err.Error()))
	}

	// validate logFilePath exists and is a directory
	if *logMethod == "file" {
		fd, err := os.Stat(*logFilePath)
		if os.IsNotExist(err) {
			panic(err)
		}
		if !fd.IsDir() {
			panic(fmt.Errorf("%s is not a directory", *logFilePath))
		}
	}

	logfileMaxSize, err := strconv.Atoi(*logFileMaxSize)
	if err != nil {
		panic(fmt.Errorf("error converting arg --log.file-max-size to int - %s", err.Error()))
	}

	logfileMaxBackups, err := strconv.Atoi(*logFileMaxBackups)
	if err != nil {
		panic(fmt.Errorf("error converting arg --log.file-max-backups to int - %s", err.Error()))
	}

	logfileMaxAge, err := strconv.Atoi(*logFileMaxAge)
	if err != nil {
		panic(fmt.Errorf("error converting arg --log.file-max-age to int - %s", err.Error()))
	}

	config.NewConfig(&config.Config{
		Source:      *source,
		MAASBinary:  *maasBinary,
		MAASTimeout: *maasTimeout,
		APIEndpoint: *apiEndpoint,
		APIKey:      *apiKey,
		SSLVerify:   *insecureSkipVerify,
	})

	logConfig := logger.LoggerConfig{
		LogLevel:  *logLevel,
		LogMethod: *logMethod,
		LogFile: logger.LogFile{
			Path:       *logFilePath,
			MaxSize:    logfileMaxSize,
			MaxBackups: logfileMaxBackups,
			MaxAge:     logfileMaxAge,
		},
		VectorEndpoint: *vectorEndpoint,
	}

	err = logger.Initialize(app, nodename, logConfig)
	if err != nil {
		panic(fmt.Errorf("error initializing logger - log_method=%s vector_endpoint=%s log_file_path=%s - err=%s",
			*logMethod, *vectorEndpoint, *logFilePath, err.Error()))
	}

	log = zap.L()
	defer logger.Flush()

	if *logMethod == "vector" {
		log.Info("successfully initialized logger", zap.String("log_method", *logMethod),
			zap.String("vector_endpoint", *vectorEndpoint))
	} else if *logMethod == "file" {
		log.Info("successfully initialized logger", zap.String("log_method", *logMethod),
			zap.String("log_file_path", *logFilePath),
			zap.Int("log_file_max_size", logfileMaxSize),
			zap.Int("log_file_max_backups", logfileMaxBackups),
			zap.Int("log_file_max_age", logfileMaxAge))
	}

	// configure vault client if vaultRoleId & vaultSecretId are set
	if *vaultRoleId != "" && *vaultSecretId != "" {
		var err error
		vault, err = ma_vault.NewVaultAppRoleClient(
			ctx,
			ma_vault.Parameters{
				Address:         *vaultAddr,
				ApproleRoleID:   *vaultRoleId,
				ApproleSecretID: *vaultSecretId,
			},
		)
		if err != nil {
			log.Error("failed initializing vault client", zap.Error(err),
				zap.String("vault_address", *vaultAddr),
				zap.String("vault_role_id", *vaultRoleId))
		} else {
			// profile API key lookups go through vault once configured
			common.ProfileStore.Vault = vault

			// start go routine to continuously renew vault token
			wg.Add(1)
			go vault.RenewToken(ctx, doneRenew, tokenLifecycle, &wg)
		}
	}

	audit.RegisterMetrics(prometheus.DefaultRegisterer)

	reportConfig := &handlers.ReportConfig{}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /info", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(buildinfo.Info)
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /report/disks", handlers.DiskReportHandler(reportConfig))

	mux.HandleFunc("GET /report/nics", handlers.NICReportHandler(reportConfig))

	tmplIndex := template.Must(template.New("index").Parse(indexTmpl))
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		err := tmplIndex.Execute(w, buildinfo.Info)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	mux.HandleFunc("GET /verbosity", logger.Verbosity)
	mux.HandleFunc("PUT /verbosity", logger.SetVerbosity)

	instrumentation := muxprom.NewDefaultInstrumentation()
	wrappedmux := logging.LoggingHandler(instrumentation.Middleware(mux))

	srv := &http.Server{
		Addr:    ":" + *port,
		Handler: wrappedmux,
	}

	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)

	listener, err := net.Listen("tcp4", ":"+*port)
	if err != nil {
		log.Error("starting "+app+" service failed", zap.Error(err))
		signals <- syscall.SIGTERM
	} else {
		wg.Add(1)
		go func() {
			defer wg.Done()

			if err := srv.Serve(listener); err != nil && err != http.ErrServerClosed {
				log.Error("http server received an error", zap.Error(err))
				signals <- syscall.SIGTERM
			}
		}()

		log.Info("started " + app + " service")
	}

	wg.Add(1)
	go func() {
		defer wg.Done()
		s := <-signals
		log.Info(s.String() + " signal caught, stopping app")
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("http server shutdown failed", zap.Error(err))
		}

		if vault != nil && vault.IsLoggedIn() {
			// send signal to stop token watcher if we were able to successfully login
			tokenLifecycle <- true
		}
		doneRenew <- true
	}()

	wg.Wait()
}
