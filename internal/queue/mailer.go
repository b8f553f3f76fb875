package queue

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// sendConfirmationEmail mails the visitor their reservation number.  When
// SMTP_HOST is unset the step is skipped entirely, which keeps local and
// test environments mail-free.
func sendConfirmationEmail(ev ReservationConfirmedEvent) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	body := fmt.Sprintf(
		"<p>Dear %s %s,</p>"+
			"<p>Your reservation for <strong>%s</strong> on %s is confirmed.</p>"+
			"<p>Reservation number: <strong>%s</strong><br>"+
			"Party size: %d<br>Price: %s</p>"+
			"<p>Please show the reservation number (or its QR code) at the entrance.</p>",
		ev.FirstName, ev.LastName, ev.EventTitle, ev.EventDate,
		ev.Number, ev.NumberOfPeople, ev.TotalAmount)

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", ev.Email)
	m.SetHeader("Subject", "Reservation confirmed: "+ev.Number)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	return d.DialAndSend(m)
}
