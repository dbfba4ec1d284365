// Package classify holds every scrape point between ectf and the
// echoCTF.RED web application: the CSRF meta tag, the claim notification
// scripts and the targets listing markup.
//
// The platform has no structured API for these responses. The rendered
// markup and the wording of its notifications are the contract, so when
// the platform changes a template the fix belongs here and nowhere else.
package classify
