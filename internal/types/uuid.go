package types

import (
	"fmt"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"github.com/teris-io/shortid"
)

// Entity ID prefixes
const (
	UUIDPrefixService        = "svc"
	UUIDPrefixPart           = "part"
	UUIDPrefixClient         = "clnt"
	UUIDPrefixJob            = "job"
	UUIDPrefixBulkRule       = "rule"
	UUIDPrefixTier           = "tier"
	UUIDPrefixTierAssignment = "tasn"
	UUIDPrefixSeasonalWindow = "seas"
	UUIDPrefixCalculation    = "calc"
)

// GenerateUUID returns a k-sortable unique identifier
func GenerateUUID() string {
	return ulid.Make().String()
}

// GenerateUUIDWithPrefix returns a k-sortable unique identifier
// with a prefix ex job_0ujsswThIGTUYm2K8FjOOfXtY1K
func GenerateUUIDWithPrefix(prefix string) string {
	if prefix == "" {
		return GenerateUUID()
	}
	return fmt.Sprintf("%s_%s", prefix, GenerateUUID())
}

var (
	sidGenerator *shortid.Shortid
	once         sync.Once
)

func initializeSID() {
	var err error
	sidGenerator, err = shortid.New(1, shortid.DefaultABC, 2342)
	if err != nil {
		panic("failed to initialize shortid generator: " + err.Error())
	}
}

// GenerateJobNumber returns a short human-readable job reference,
// e.g. JOB-XYZ12A8Q. These appear on quotes and technician worksheets.
func GenerateJobNumber() string {
	once.Do(initializeSID)

	id, err := sidGenerator.Generate()
	if err != nil {
		return ""
	}
	id = strings.ReplaceAll(id, "-", "")
	id = strings.ReplaceAll(id, "_", "")
	return fmt.Sprintf("JOB-%s", strings.ToUpper(id))
}
