package application

import "confsite/internal/domain/entity"

// Curated notable-speaker allow-lists, matched by login or plaintext email.
// One list covers past editions, the other the current one; membership in
// either earns the badge.
var (
	historicalStars = []string{
		"pamelafox",
		"matthiasnoback",
		"hjuskewycz",
		"egorcenkova",
		"sandrine.joseph@lumen.fr",
		"teresa@craftedcode.io",
	}

	currentEditionStars = []string{
		"aurelievache",
		"ldoguin",
		"glaforge",
		"horgix",
		"k.dubois@devrel.example",
	}
)

func containsUser(list []string, u *entity.User, email string) bool {
	for _, entry := range list {
		if entry == u.Login || (email != "" && entry == email) {
			return true
		}
	}
	return false
}

// IsSpeakerStar reports whether the user belongs to either curated list.
// email is the decrypted plaintext address, or empty when unavailable.
func IsSpeakerStar(u *entity.User, email string) bool {
	return containsUser(historicalStars, u, email) || containsUser(currentEditionStars, u, email)
}
