package artifact_source

import (
	"context"
	"net"
	"net/http"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/rs/dnscache"
	"golang.org/x/sync/semaphore"
)

// SharedHTTPClient returns the HTTP client used by the AWS SDK clients and the analytics client
//
// It caches DNS lookups and limits the number of parallel lookups and connections per host.
// A warm Lambda container reuses it across invocations.
var SharedHTTPClient = sync.OnceValue(initializeHTTPClient)

func initializeHTTPClient() aws.HTTPClient {
	// max number of parallel DNS lookups
	dnsLookupMaxParallel := readEnvVarToInt("FORWARDER_AWS_DNS_LOOKUP_MAX_PARALLEL", 25)

	// The DNS cache will be refreshed at this interval. A refresh means that
	// any unused entries are removed and any entries that were used since the
	// last refresh will be re-looked up to ensure they are current.
	// Set to 0 to disable the refresh, -1 to disable the cache (the AWS default).
	dnsCacheRefreshIntervalSecs := readEnvVarToInt("FORWARDER_AWS_DNS_CACHE_REFRESH_INTERVAL_SECS", 300)

	// max number of connections per host, 0 means no limit (the AWS SDK default)
	httpTransportMaxConnsPerHost := readEnvVarToInt("FORWARDER_AWS_HTTP_TRANSPORT_MAX_CONNS_PER_HOST", 100)

	var resolver = &dnscache.Resolver{}
	if dnsCacheRefreshIntervalSecs > 0 {
		go func() {
			t := time.NewTicker(time.Duration(dnsCacheRefreshIntervalSecs) * time.Second)
			defer t.Stop()
			for range t.C {
				resolver.Refresh(true)
			}
		}()
	}

	// start from the AWS buildable client so the SDK defaults (timeouts etc) are kept
	client := awshttp.NewBuildableClient()

	if httpTransportMaxConnsPerHost > 0 {
		client = client.WithTransportOptions(func(tr *http.Transport) {
			tr.MaxConnsPerHost = httpTransportMaxConnsPerHost
		})
	}

	if dnsCacheRefreshIntervalSecs >= 0 {
		sem := semaphore.NewWeighted(int64(dnsLookupMaxParallel))
		dialer := client.GetDialer()

		client = client.WithTransportOptions(func(tr *http.Transport) {
			tr.DialContext = func(ctx context.Context, network string, addr string) (conn net.Conn, err error) {
				host, port, err := net.SplitHostPort(addr)
				if err != nil {
					return nil, err
				}

				if err := sem.Acquire(ctx, 1); err != nil {
					return nil, err
				}
				ips, err := resolver.LookupHost(ctx, host)
				sem.Release(1)
				if err != nil {
					return nil, err
				}

				// try each address until we get a connection
				for _, ip := range ips {
					conn, err = dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
					if err == nil {
						break
					}
				}
				return
			}
		})
	}

	return client
}

// Helper function for integer based environment variables.
func readEnvVarToInt(name string, defaultVal int) int {
	val := defaultVal
	envValue := os.Getenv(name)
	if envValue != "" {
		i, err := strconv.Atoi(envValue)
		if err == nil {
			val = i
		}
	}
	return val
}
