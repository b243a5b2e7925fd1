package emailverify

// defaultBlocklist lists known fake and disposable email providers that are
// rejected before any DNS work happens.
var defaultBlocklist = []string{
	"test.com", "example.com", "fake.com", "dummy.com", "sample.com",
	"temp.com", "temporary.com", "fakeemail.com", "notreal.com",
	"mailinator.com", "guerrillamail.com", "throwaway.email",
	"10minutemail.com", "tempmail.com", "disposable.com",
}
