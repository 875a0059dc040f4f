// Package config loads store fixtures: the YAML description of stores and
// seed objects a test run starts with. Fixtures are validated before being
// applied to a registry, and the fixture format's JSON schema is exposed
// for editor tooling.
package config
