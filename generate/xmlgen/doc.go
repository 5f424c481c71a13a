// Package xmlgen produces Spring-style XML bean definitions (inbound
// and outbound) from an intermediate tree. Unlike
// the POJO and OpenAPI generators, it preserves transitory groupId and
// occurrenceCount control fields, since those drive the fixed-length
// wire codec at runtime.
package xmlgen
