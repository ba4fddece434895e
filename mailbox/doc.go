// Package mailbox defines the contract for retrieving emailed verification
// codes during an identity challenge, plus the shared code-extraction
// helper that real mailbox integrations (IMAP, webmail APIs, test fakes)
// can build on.
package mailbox
