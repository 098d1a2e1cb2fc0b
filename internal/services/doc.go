// Package services provides typed access to the grief-support backend's
// feature areas, one service per router: auth, chat, journal, mood, support
// rooms, reminders, resources, analytics, voice, and uploads.
//
// # Transport
//
// Every service issues its requests through the shared [client.Client], which
// owns base URL resolution, credential injection, retry, and the
// connectivity signal. Services only know their paths, parameters, and
// response shapes; they never touch net/http directly.
//
// # Parameter Encoding
//
// The backend mixes three parameter styles and the services mirror them
// exactly:
//   - JSON bodies: register, journal and mood entry creation
//   - Form encoding: login (OAuth2 password form), multipart file uploads
//   - Query strings: chat messages, reminder creation, pagination
//
// # Error Handling
//
// Services surface the client's error taxonomy unchanged:
//   - [shared.ErrUnreachable] : backend could not be reached after retries
//   - [shared.ErrAuthRejected] : credential rejected and cleared
//   - [*client.APIError] : any other non-2xx backend response
//
// Response types shared across packages live in models; shapes used by a
// single service are declared beside it.
package services
