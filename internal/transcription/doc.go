// Package transcription uploads recorded audio to the transcription service
// and returns the recognized text.
//
// The service contract is deliberately narrow: one multipart POST per file,
// a fixed request timeout, and a JSON body of the form {"text": "..."}.
// Every failure (transport, timeout, non-2xx status or undecodable body) is
// reported as ErrTranscriptionFailed; callers do not retry.
package transcription
