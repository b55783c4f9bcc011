package emit

import (
	"fmt"
	"strings"

	"github.com/vk/xspecgen/internal/model"
)

// paramString renders the Parameter(...) constructor call for p.
func paramString(p model.Parameter) string {
	if p.Kind == model.ParamBasic {
		return basicParam(p)
	}

	var sb strings.Builder
	def := model.FormatFloat(p.Default)
	if p.Kind == model.ParamSwitch {
		def = fmt.Sprintf("%d", int64(p.Default))
	}
	fmt.Fprintf(&sb, "Parameter(name, '%s', %s", p.Name, def)
	for _, lim := range []struct {
		val  *float64
		name string
	}{
		{p.SoftMin, "min"},
		{p.SoftMax, "max"},
		{p.HardMin, "hard_min"},
		{p.HardMax, "hard_max"},
	} {
		if lim.val != nil {
			fmt.Fprintf(&sb, ",%s=%s", lim.name, model.FormatFloat(*lim.val))
		}
	}
	if p.Units != "" {
		fmt.Fprintf(&sb, ",units='%s'", quote(p.Units))
	}
	sb.WriteString(",alwaysfrozen=True)")
	return sb.String()
}

// basicParam uses the soft limits from the file; hard limits are open
// ended, bounded below by zero unless the soft minimum is negative.
func basicParam(p model.Parameter) string {
	var softMin, softMax float64
	if p.SoftMin != nil {
		softMin = *p.SoftMin
	}
	if p.SoftMax != nil {
		softMax = *p.SoftMax
	}
	hardMin := "0.0"
	if softMin < 0 {
		hardMin = "-hugeval"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Parameter(name, '%s', %s, min=%s, max=%s, hard_min=%s, hard_max=hugeval",
		p.Name, model.FormatFloat(p.Default), model.FormatFloat(softMin), model.FormatFloat(softMax), hardMin)
	if p.Frozen {
		sb.WriteString(", frozen=True")
	}
	if p.Units != "" {
		fmt.Fprintf(&sb, ", units='%s'", quote(p.Units))
	}
	sb.WriteString(")")
	return sb.String()
}

// quote escapes s for a single-quoted Python string literal.
func quote(s string) string {
	return strings.NewReplacer(`\`, `\\`, "'", `\'`).Replace(s)
}
