// Package hcl provides the concrete HCL implementation of the config.Loader
// interface. It is responsible for file parsing, HCL-to-model translation
// and the cty conversion of evaluated attributes.
package hcl
