// Eipreaper - reclaims idle Elastic IPs that are tagged for management,
// unassociated, and not protected.
package main

func main() {
	Execute()
}
