package logging

const (
	// FieldError can be used instead of Err(err) if you have only the error message string.
	FieldError = "err"

	FieldComponent = "component"

	FieldDuration = "duration"
	FieldUrl      = "url"
	FieldReqId    = "reqId"
	FieldStatus   = "status"
	FieldMethod   = "method"

	FieldCompilerVersion = "compilerVersion"
	FieldCompilerPath    = "compilerPath"
	FieldFileName        = "fileName"
	FieldContractName    = "contractName"
	FieldSourcePath      = "sourcePath"
	FieldImport          = "import"
	FieldSourceCount     = "sourceCount"
	FieldDiagnostics     = "diagnostics"
)
