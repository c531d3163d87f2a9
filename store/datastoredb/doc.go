/*
Package datastoredb provides an implementation of the store.GlobalSiloStringStorer
interface backed by Google Cloud Datastore.

Requirements for the Google Cloud Datastore integration:
  - A valid project id with datastore mode enabled
  - Google Cloud Credentials (typically in the form of a json file with credentials
    from https://console.cloud.google.com/apis/credentials/serviceaccountkey)

Example code:

	import (
		"github.com/tallybot/tallybot/store/datastoredb"
		"google.golang.org/api/option"
	)

	func main() {
		storer, err := datastoredb.NewDatastoreDB("tallybot", "my-project", option.WithCredentialsFile(*gcloudCredentialsFile))
		if err != nil {
			log.Fatalf("Opening tallybot db failed: %s", err.Error())
		}
		defer storer.Close()

		teams := tallybot.NewTeamStore(storer, logger)
		...
	}
*/
package datastoredb
