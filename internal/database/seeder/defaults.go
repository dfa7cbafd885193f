package seeder

// Defaults is the seed order for a fresh database: taxonomy first, then the
// optional admin account, then demo postings that need the admin to exist.
func Defaults() []Seeder {
	return []Seeder{
		SkillsSeeder{},
		AdminSeeder{},
		SampleJobsSeeder{},
	}
}
