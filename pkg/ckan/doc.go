// Package ckan holds the shared vocabulary for talking to a CKAN content
// portal: the four manageable object kinds and their action-name
// convention, membership roles, batch result envelopes, and the error
// types surfaced by the transport and command layers.
package ckan
