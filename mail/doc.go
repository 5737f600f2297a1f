// Package mail provides the simulated per-contact email send.
//
// Send accepts a target contact, a subject and a body, composes the message a
// real mailer would transmit, logs it, and reports success. There is no
// delivery, queueing or retry: the package never opens a network connection.
//
// Subject and body are required, as is an email address on the contact.
//
// Example:
//
//	sim := mail.NewSimulator(log, "me@example.com")
//	out, err := sim.Send(ctx, mail.SendInput{
//		To:      contact,
//		Subject: "Follow-up",
//		Body:    "Thanks for the call.",
//	})
package mail
