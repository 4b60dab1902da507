// Package catalog loads form catalogs. The default catalog (userInfo,
// addressInfo, paymentInfo) ships embedded as YAML; additional catalogs can
// be read from JSON/YAML files, walked from an fs.FS, or derived from the
// request bodies of an OpenAPI document.
package catalog
