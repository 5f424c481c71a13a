// Package pojogen emits a Java POJO class hierarchy from an
// intermediate tree. Every object or array container becomes
// its own class file; transitory groupId/occurrenceCount control fields
// are dropped entirely, and enum-constrained fields expand into a sum
// type with the four canonical helper methods.
package pojogen
