// Package merge reconciles the two parsers' extraction results into a
// single result plus a diagnostic report.
//
// Tables present in only one source are carried through verbatim with
// that source's provenance. Tables present in both are merged record by
// record: entries are matched by case-folded name, the preferred source
// wins every field-level disagreement, and each disagreement is recorded
// as a warning naming the table, the field and both values. Unmatched
// entries from either side are carried through, never duplicated.
//
// Merging never fails. The worst outcome for any field is "absent", and
// every irregularity is visible in the Report.
package merge
