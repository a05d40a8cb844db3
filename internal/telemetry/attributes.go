package telemetry

import (
	"github.com/NilFoundation/solforge/common/logging"
	"go.opentelemetry.io/otel/attribute"
)

func Success(ok bool) attribute.KeyValue {
	return attribute.Bool("success", ok)
}

func CompilerVersion(version string) attribute.KeyValue {
	return attribute.String(logging.FieldCompilerVersion, version)
}

func Operation(name string) attribute.KeyValue {
	return attribute.String("operation", name)
}
