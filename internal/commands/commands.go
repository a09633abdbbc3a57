// Package commands maps enabled service configurations to shell
// invocations for installing and starting each integration. Nothing is
// ever executed here; the engine's consumers decide what to do with the
// generated strings.
package commands

import (
	"fmt"
	"strings"

	"github.com/petrarca/stack-advisor/internal/types"
)

// CommandSet holds the shell invocations for one integration.
type CommandSet struct {
	DescriptorName string `json:"descriptor_name"`
	Install        string `json:"install,omitempty"`
	Start          string `json:"start,omitempty"`
}

// commandTable maps descriptor names to invocation templates. %d is the
// configured port where the template takes one.
var commandTable = map[string]CommandSet{
	"postgresql":    {Install: "docker pull postgres:16-alpine", Start: "docker run -d --name postgres -p %d:5432 -e POSTGRES_PASSWORD=postgres postgres:16-alpine"},
	"mysql":         {Install: "docker pull mysql:8", Start: "docker run -d --name mysql -p %d:3306 -e MYSQL_ROOT_PASSWORD=root mysql:8"},
	"mongodb":       {Install: "docker pull mongo:7", Start: "docker run -d --name mongodb -p %d:27017 mongo:7"},
	"redis":         {Install: "docker pull redis:7-alpine", Start: "docker run -d --name redis -p %d:6379 redis:7-alpine"},
	"memcached":     {Install: "docker pull memcached:alpine", Start: "docker run -d --name memcached -p %d:11211 memcached:alpine"},
	"rabbitmq":      {Install: "docker pull rabbitmq:3-management", Start: "docker run -d --name rabbitmq -p %d:5672 rabbitmq:3-management"},
	"kafka":         {Install: "docker pull apache/kafka:latest", Start: "docker run -d --name kafka -p %d:9092 apache/kafka:latest"},
	"prometheus":    {Install: "docker pull prom/prometheus", Start: "docker run -d --name prometheus -p %d:9090 prom/prometheus"},
	"grafana":       {Install: "docker pull grafana/grafana-oss", Start: "docker run -d --name grafana -p %d:3000 grafana/grafana-oss"},
	"jaeger":        {Install: "docker pull jaegertracing/all-in-one", Start: "docker run -d --name jaeger -p %d:16686 jaegertracing/all-in-one"},
	"loki":          {Install: "docker pull grafana/loki", Start: "docker run -d --name loki -p %d:3100 grafana/loki"},
	"elasticsearch": {Install: "docker pull elasticsearch:8.14.0", Start: "docker run -d --name elasticsearch -p %d:9200 -e discovery.type=single-node elasticsearch:8.14.0"},
	"kibana":        {Install: "docker pull kibana:8.14.0", Start: "docker run -d --name kibana -p %d:5601 kibana:8.14.0"},
	"minio":         {Install: "docker pull minio/minio", Start: "docker run -d --name minio -p %d:9000 minio/minio server /data"},
	"vault":         {Install: "docker pull hashicorp/vault", Start: "docker run -d --name vault -p %d:8200 hashicorp/vault"},
	"mailhog":       {Install: "docker pull mailhog/mailhog", Start: "docker run -d --name mailhog -p %d:8025 mailhog/mailhog"},
	"sentry":        {Install: "npm install --save @sentry/node"},
	"rollbar":       {Install: "npm install --save rollbar"},
	"jest":          {Install: "npm install --save-dev jest", Start: "npx jest"},
	"vitest":        {Install: "npm install --save-dev vitest", Start: "npx vitest"},
	"pytest":        {Install: "pip install pytest", Start: "pytest"},
	"webpack":       {Install: "npm install --save-dev webpack webpack-cli", Start: "npx webpack --watch"},
	"vite":          {Install: "npm install --save-dev vite", Start: "npx vite"},
	"esbuild":       {Install: "npm install --save-dev esbuild"},
	"prettier":      {Install: "npm install --save-dev prettier", Start: "npx prettier --write ."},
	"eslint":        {Install: "npm install --save-dev eslint", Start: "npx eslint ."},
	"black":         {Install: "pip install black", Start: "black ."},
	"golangci-lint": {Install: "go install github.com/golangci/golangci-lint/cmd/golangci-lint@latest", Start: "golangci-lint run"},
	"trivy":         {Install: "docker pull aquasec/trivy", Start: "docker run --rm -v /var/run/docker.sock:/var/run/docker.sock aquasec/trivy image"},
	"flyway":        {Install: "docker pull flyway/flyway", Start: "docker run --rm flyway/flyway migrate"},
}

// ForConfigurations generates the command sets for the enabled
// configurations, in input order. Integrations without a known
// invocation are skipped.
func ForConfigurations(configs []*types.ServiceConfiguration) []CommandSet {
	var out []CommandSet
	for _, config := range configs {
		if !config.Enabled {
			continue
		}
		template, ok := commandTable[config.DescriptorName]
		if !ok {
			continue
		}

		set := CommandSet{
			DescriptorName: config.DescriptorName,
			Install:        template.Install,
			Start:          template.Start,
		}
		if config.Port > 0 && strings.Contains(set.Start, "%d") {
			set.Start = fmt.Sprintf(set.Start, config.Port)
		}
		out = append(out, set)
	}
	return out
}
