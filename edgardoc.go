// Package edgardoc extracts the sub-documents and filer header from SEC EDGAR
// full-text submission archives and renders a browsable static site from the
// extracted material.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or format (e.g., sgml/, sqlite/, fs/).
package edgardoc
