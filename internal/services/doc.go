// Package services holds cross-cutting helpers shared by the external tool
// adapters: the error taxonomy with stage-context wrapping, and context
// annotations used for structured logging.
package services
