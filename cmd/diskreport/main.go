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
	"fmt"
	"os"

	"github.com/comcast/maasaudit/audit"
	"github.com/comcast/maasaudit/buildinfo"
	"github.com/comcast/maasaudit/common"
	"github.com/comcast/maasaudit/config"
	"github.com/comcast/maasaudit/logger"
	"github.com/comcast/maasaudit/maas"
	"go.uber.org/zap"

	"gopkg.in/alecthomas/kingpin.v2"
)

const app = "diskreport"

var (
	a        = kingpin.New(app, "audit MAAS machine storage against the platform disk requirements")
	profile  = a.Arg("profile", "MAAS CLI profile name").Required().String()
	tag      = a.Flag("tag", "filter machines by tag").Default("").String()
	hostname = a.Flag("hostname", "filter machines by hostname").Default("").String()

	source             = a.Flag("source", "inventory source to query").PlaceHolder("[cli|api]").Default("cli").Envar("MAAS_SOURCE").Enum("cli", "api")
	maasBinary         = a.Flag("maas.binary", "path to the maas CLI binary").Default("maas").Envar("MAAS_BINARY").String()
	maasTimeout        = a.Flag("maas.timeout", "timeout for maas CLI invocations").Default("2m").Envar("MAAS_TIMEOUT").Duration()
	apiEndpoint        = a.Flag("api.endpoint", "MAAS API endpoint, i.e. http://maas.example.com:5240/MAAS").Default("").Envar("MAAS_ENDPOINT").String()
	apiKey             = a.Flag("api.key", "MAAS API key in consumer:token:secret form").Default("").Envar("MAAS_API_KEY").String()
	insecureSkipVerify = a.Flag("insecure-skip-verify", "Skip TLS verification").Default("false").Envar("INSECURE_SKIP_VERIFY").Bool()
	logLevel           = a.Flag("log.level", "log level verbosity").PlaceHolder("[debug|info|warn|error]").Default("info").Envar("LOG_LEVEL").String()
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
)

func main() {
	ctx := context.Background()

	nodename, err := os.Hostname()
	if err != nil {
		nodename = ""
	}

	a.HelpFlag.Short('h')
	a.Version(buildinfo.Info.GitVersion)

	_, err = a.Parse(os.Args[1:])
	if err != nil {
		panic(fmt.Errorf("error parsing argument flags - %s", err.Error()))
	}

	config.NewConfig(&config.Config{
		Source:      *source,
		MAASBinary:  *maasBinary,
		MAASTimeout: *maasTimeout,
		APIEndpoint: *apiEndpoint,
		APIKey:      *apiKey,
		SSLVerify:   *insecureSkipVerify,
	})

	err = logger.Initialize(app, nodename, logger.LoggerConfig{
		LogLevel: *logLevel,
	})
	if err != nil {
		panic(fmt.Errorf("error initializing logger - err=%s", err.Error()))
	}

	log = zap.L()
	defer logger.Flush()

	client, err := common.NewMAASClient(ctx, *profile)
	if err != nil {
		log.Error("failed building MAAS client", zap.Error(err), zap.String("profile", *profile))
		logger.Flush()
		os.Exit(1)
	}

	req := common.ProfileStore.RequirementsFor(*profile)
	filter := maas.Filter{Tag: *tag, Hostname: *hostname}

	if _, err := audit.RunDiskReport(ctx, client, filter, req, os.Stdout); err != nil {
		log.Error("disk report failed", zap.Error(err), zap.String("profile", *profile))
		logger.Flush()
		os.Exit(1)
	}
}
