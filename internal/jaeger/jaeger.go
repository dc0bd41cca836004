package jaeger

import (
	"github.com/spf13/viper"
	"go.opentelemetry.io/otel/exporters/jaeger"
)

const defaultCollectorEndpoint = "http://jaeger:14268/api/traces"

func MustNewJaeger() *jaeger.Exporter {
	endpoint := viper.GetString("jaeger.collector_endpoint")
	if endpoint == "" {
		endpoint = defaultCollectorEndpoint
	}

	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(
		jaeger.WithEndpoint(endpoint),
	))
	if err != nil {
		panic(err)
	}

	return exp
}
