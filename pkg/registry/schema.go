package registry

import (
	"regexp"

	"github.com/wasmregistry/codemap/pkg/schema"
)

// Precompiled patterns for registry fields.
var (
	// Decimal code id
	codeIDPattern = regexp.MustCompile(`^[0-9]+$`)

	// Mainnet hashes follow the uppercase registry convention
	mainnetHashPattern = regexp.MustCompile(`^[A-F0-9]{64}$`)

	// Testnet hashes are accepted in either case
	testnetHashPattern = regexp.MustCompile(`^[A-Fa-f0-9]{64}$`)

	// Either the literal "Genesis" or a decimal proposal id
	governancePattern = regexp.MustCompile(`^(Genesis|[0-9]+)$`)

	// http or https URL
	urlPattern = regexp.MustCompile(`^https?://`)
)

// Validate checks a raw decoded registry value against the collection
// schema. It returns nil or a *schema.Errors with every violation found.
func Validate(value any) error {
	return schema.Validate(value, CollectionSchema(), "contracts")
}

// CollectionSchema describes a valid registry: an array of contract
// records, unique in code_id and ordered by its numeric value.
func CollectionSchema() schema.Node {
	return &schema.Array{
		Item:     contractSchema(),
		Identity: "code_id",
	}
}

func contractSchema() schema.Node {
	return &schema.Object{
		Properties: map[string]schema.Node{
			"code_id": &schema.String{
				MinLength: 1,
				Pattern:   codeIDPattern,
				Message:   "must be a decimal code id",
			},
			"hash": &schema.String{
				Pattern: mainnetHashPattern,
				Message: "must be a 64-character uppercase hex hash",
			},
			"name":        &schema.String{MinLength: 1},
			"description": &schema.String{MinLength: 1},
			"release": &schema.Object{
				Properties: map[string]schema.Node{
					"url": &schema.String{
						MinLength: 1,
						Pattern:   urlPattern,
						Message:   "must be an http(s) URL",
					},
					"version": &schema.String{MinLength: 1},
				},
				Required: []string{"url", "version"},
			},
			"author": &schema.Object{
				Properties: map[string]schema.Node{
					"name": &schema.String{MinLength: 1},
					"url": &schema.String{
						MinLength: 1,
						Pattern:   urlPattern,
						Message:   "must be an http(s) URL",
					},
				},
				Required: []string{"name", "url"},
			},
			"governance": &schema.String{
				MinLength: 1,
				Pattern:   governancePattern,
				Message:   `must be "Genesis" or a decimal proposal id`,
			},
			"deprecated": &schema.Bool{},
			"testnet":    testnetSchema(),
		},
		Required: []string{
			"code_id", "hash", "name", "description",
			"release", "author", "governance", "deprecated",
		},
	}
}

func testnetSchema() schema.Node {
	return &schema.Object{
		Properties: map[string]schema.Node{
			"code_id": &schema.String{
				MinLength: 1,
				Pattern:   codeIDPattern,
				Message:   "must be a decimal code id",
			},
			"hash": &schema.String{
				Pattern: testnetHashPattern,
				Message: "must be a 64-character hex hash",
			},
			"network":     &schema.String{MinLength: 1},
			"deployed_by": &schema.String{MinLength: 1},
			"deployed_at": &schema.String{MinLength: 1},
		},
		Required: []string{"code_id", "hash", "network", "deployed_by", "deployed_at"},
	}
}
