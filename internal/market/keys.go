package market

// Storage keys. This is the entire persisted-state surface; each key holds one
// JSON document.
const (
	KeyJobs          = "skillora_db_jobs"
	KeyProposals     = "skillora_db_proposals"
	KeyMessages      = "skillora_db_messages"
	KeyUser          = "skillora_db_user"
	KeyContacts      = "skillora_db_contacts"
	KeyContracts     = "skillora_db_contracts"
	KeyNotifications = "skillora_db_notifications"
)

// AllKeys lists every storage key.
var AllKeys = []string{
	KeyJobs,
	KeyProposals,
	KeyMessages,
	KeyUser,
	KeyContacts,
	KeyContracts,
	KeyNotifications,
}
