package gcpstructlog

// special field names
const (
	FieldNameInsertId                       string = "gcp:insert_id"
	FieldNameOperationId                    string = "gcp:operation_id"
	FieldNameOperationProducer              string = "gcp:operation_producer"
	FieldNameOperationFirst                 string = "gcp:operation_first"
	FieldNameOperationLast                  string = "gcp:operation_last"
	FieldNameLabels                         string = "gcp:labels"
	FieldNameCacheLookup                    string = "gcp:cache:lookup"
	FieldNameCacheHit                       string = "gcp:cache:hit"
	FieldNameCacheValidatedWithOriginServer string = "gcp:cache:validation_with_origin_header"
	FieldNameCacheFillBytes                 string = "gcp:cache:fill_bytes"
	FieldNameServerIp                       string = "gcp:server_ip"
	FieldNameLatency                        string = "gcp:latency"
	FieldNameTraceId                        string = "gcp:trace:id"
	FieldNameTraceSpanId                    string = "gcp:trace:span_id"
	FieldNameTraceEnabled                   string = "gcp:trace:enabled"
	FieldNameReportType                     string = "gcp:report_type"
)
