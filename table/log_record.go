package table

import (
	"fmt"

	"github.com/turbot/cloudfront-analytics-forwarder/constants"
	"github.com/turbot/cloudfront-analytics-forwarder/schema"
)

// LogRecord is a single CloudFront access log line
// Fields are declared in the order they appear in the log file. A nil field means the log contained the '-' placeholder.
type LogRecord struct {
	Date                   *string `json:"date"`
	Time                   *string `json:"time"`
	EdgeLocation           *string `json:"edge_location"`
	BytesSent              *string `json:"bytes_sent"`
	ClientIP               *string `json:"client_ip"`
	HTTPMethod             *string `json:"http_method"`
	ServerHost             *string `json:"server_host"`
	URI                    *string `json:"uri"`
	StatusCode             *string `json:"status_code"`
	Referrer               *string `json:"referrer"`
	UserAgent              *string `json:"user_agent"`
	URIQuery               *string `json:"uri_query"`
	Cookie                 *string `json:"cookie"`
	EdgeResultType         *string `json:"edge_result_type"`
	EdgeRequestID          *string `json:"edge_request_id"`
	ForwardedHostHeaders   *string `json:"forwarded_host_headers"`
	Protocol               *string `json:"protocol"`
	BytesReceived          *string `json:"bytes_received"`
	TimeTaken              *string `json:"time_taken"`
	XForwardedFor          *string `json:"x_forwarded_for"`
	SSLProtocol            *string `json:"ssl_protocol"`
	SSLCipher              *string `json:"ssl_cipher"`
	EdgeResponseResultType *string `json:"edge_response_result_type"`
}

// LogRecordColumns is the ordered column list of a LogRecord
var LogRecordColumns = mustColumns()

// LogRecordFieldCount is the number of fields in every log line
var LogRecordFieldCount = len(LogRecordColumns)

func mustColumns() schema.Columns {
	c, err := schema.ColumnsFromStruct(LogRecord{})
	if err != nil {
		panic(err)
	}
	return c
}

// fields returns pointers to every field, in column order
func (r *LogRecord) fields() []**string {
	return []**string{
		&r.Date,
		&r.Time,
		&r.EdgeLocation,
		&r.BytesSent,
		&r.ClientIP,
		&r.HTTPMethod,
		&r.ServerHost,
		&r.URI,
		&r.StatusCode,
		&r.Referrer,
		&r.UserAgent,
		&r.URIQuery,
		&r.Cookie,
		&r.EdgeResultType,
		&r.EdgeRequestID,
		&r.ForwardedHostHeaders,
		&r.Protocol,
		&r.BytesReceived,
		&r.TimeTaken,
		&r.XForwardedFor,
		&r.SSLProtocol,
		&r.SSLCipher,
		&r.EdgeResponseResultType,
	}
}

// NewLogRecordFromFields builds a record from the positional fields of a log line
func NewLogRecordFromFields(values []string) (*LogRecord, error) {
	if len(values) != LogRecordFieldCount {
		return nil, fmt.Errorf("expected %d fields, got %d", LogRecordFieldCount, len(values))
	}
	r := &LogRecord{}
	for i, f := range r.fields() {
		*f = nullable(values[i])
	}
	return r, nil
}

// InitialiseFromMap sets the fields of the record from a map keyed by column name
// keys which are not columns are ignored
func (r *LogRecord) InitialiseFromMap(m map[string]string) error {
	if len(m) == 0 {
		return fmt.Errorf("no fields to initialise from")
	}
	fields := r.fields()
	for k, v := range m {
		idx := LogRecordColumns.Index(k)
		if idx == -1 {
			continue
		}
		*fields[idx] = nullable(v)
	}
	return nil
}

// IsMethod returns whether the record has the given HTTP method (case sensitive)
func (r *LogRecord) IsMethod(method string) bool {
	return r.HTTPMethod != nil && *r.HTTPMethod == method
}

func nullable(v string) *string {
	if v == constants.NullFieldValue {
		return nil
	}
	return &v
}
